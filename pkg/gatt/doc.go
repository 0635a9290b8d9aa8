// Package gatt defines the characteristic contract: the validation
// engine, the error taxonomy, the parse/build pipeline, and the
// dependency-aware batch decoder.
//
// # Contract
//
// Every concrete characteristic embeds Base, declares its identity,
// Constraints and Dependencies as plain values, and implements Decode
// (plus Encode when writable). The Parse wrapper owns the pipeline:
//
//	validate input -> Decode -> validate output -> Result
//
// so concrete decoders stay a few lines and never see malformed
// buffers. Build mirrors this for encoding: values are validated
// before a single byte is produced.
//
// # Failure channels
//
// Malformed input is data, not an exception: it becomes a Result with
// OK=false and a classified ErrorKind. Programmer errors (invalid bit
// widths, panics inside Decode) surface as KindInternal. Lookup misses
// are plain absence, handled by the registry, never an error here.
//
// # Batch decoding
//
// ParseBatch orders a batch over the declared dependency graph,
// feeding each decoded result into the context of its dependents. Only
// a dependency cycle fails the whole batch; every other failure stays
// with its own entry.
package gatt
