// Command gatt-decode decodes a single GATT characteristic value from
// hex bytes on the command line.
//
// Usage:
//
//	gatt-decode -id <identifier> -hex <bytes> [flags]
//
// Flags:
//
//	-id string     Characteristic identifier: UUID, name, or alias
//	-hex string    Raw value as hex, spaces and 0x prefixes allowed
//	-spec string   Path to an alternative characteristic dataset (YAML)
//	-trace         Print the ordered parse steps
//	-log string    Append decode events to a CBOR log file
//
// Examples:
//
//	# Battery level, 100 percent
//	gatt-decode -id 0x2A19 -hex 64
//
//	# Temperature by name, with parse trace
//	gatt-decode -id temperature -hex "64 09" -trace
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gattkit/gattkit-go/pkg/characteristics"
	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/log"
	"github.com/gattkit/gattkit-go/pkg/registry"
	"github.com/gattkit/gattkit-go/pkg/specdata"
)

func main() {
	var (
		id       = flag.String("id", "", "characteristic identifier: UUID, name, or alias")
		hexStr   = flag.String("hex", "", "raw value as hex")
		specPath = flag.String("spec", "", "path to an alternative characteristic dataset")
		trace    = flag.Bool("trace", false, "print the ordered parse steps")
		logPath  = flag.String("log", "", "append decode events to a log file")
	)
	flag.Parse()

	if *id == "" || *hexStr == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := parseHex(*hexStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid hex: %v\n", err)
		os.Exit(2)
	}

	opts := registry.Options{Classes: characteristics.Builtin()}
	if *specPath != "" {
		path := *specPath
		opts.Dataset = func() (*specdata.RawDataset, error) {
			return specdata.LoadCharacteristics(path)
		}
	}

	var logger log.Logger
	if *logPath != "" {
		fl, err := log.NewFileLogger(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		logger = fl
		opts.Logger = fl
	}
	reg := registry.New(opts)

	meta, ok := reg.Lookup(*id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown characteristic %q\n", *id)
		os.Exit(1)
	}
	ch, ok := reg.ResolveClass(meta.UUID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no decoder for %s (%s)\n", meta.UUID, meta.Name)
		os.Exit(1)
	}

	res := gatt.Parse(ch, raw, nil, gatt.ParseOptions{Trace: *trace})

	fmt.Printf("%s  %s\n", meta.UUID, meta.Name)
	if res.OK {
		if meta.Unit != "" {
			fmt.Printf("  value: %v %s\n", res.Value, meta.Unit)
		} else {
			fmt.Printf("  value: %v\n", res.Value)
		}
	} else {
		fmt.Printf("  error: %s: %s\n", res.Kind, res.Message)
		for _, fe := range res.FieldErrors {
			fmt.Printf("    field %s at offset %d: %v\n", fe.Field, fe.Offset, fe.Err)
		}
	}
	if *trace {
		fmt.Println("  trace:")
		for _, step := range res.Trace {
			fmt.Printf("    %s\n", step)
		}
	}
	if logger != nil {
		ev := log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryDecode,
			UUID:      meta.UUID.String(),
			Name:      meta.Name,
			OK:        res.OK,
			Size:      len(raw),
		}
		if !res.OK {
			ev.ErrorKind = res.Kind.String()
			ev.Message = res.Message
		}
		logger.Log(ev)
	}

	if !res.OK {
		os.Exit(1)
	}
}

// parseHex accepts "6409", "64 09", and "0x64 0x09".
func parseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, "0X", "")
	s = strings.NewReplacer(" ", "", ":", "", ",", "").Replace(s)
	return hex.DecodeString(s)
}
