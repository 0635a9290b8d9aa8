// Package registry implements the identifier registry: the lazily
// loaded, alias-aware map from characteristic identifier to metadata
// and decoder class.
//
// The specification dataset is loaded exactly once, on first use,
// behind a double-checked lock: a lock-free fast path checks the
// loaded flag, and only a cold-path caller takes the mutex and
// performs the load. After load every read is lock-free; custom
// registrations briefly take the same lock and publish a fresh
// copy-on-write namespace.
//
// Resolution misses return false rather than an error - unresolved
// identifiers are an expected outcome when walking an arbitrary
// device's attribute table.
package registry
