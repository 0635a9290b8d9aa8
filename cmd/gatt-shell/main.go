// Command gatt-shell is an interactive console for decoding and
// encoding GATT characteristic values.
//
// Usage:
//
//	gatt-shell [-spec <dataset.yaml>]
//
// Commands:
//
//	decode <id> <hex>     - Decode raw bytes
//	build <id> <value>    - Encode a numeric value to bytes
//	info <id>             - Show characteristic metadata
//	list                  - List known characteristics
//	trace on|off          - Toggle parse tracing
//	quit                  - Exit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gattkit/gattkit-go/pkg/characteristics"
	"github.com/gattkit/gattkit-go/pkg/registry"
	"github.com/gattkit/gattkit-go/pkg/specdata"
)

func main() {
	specPath := flag.String("spec", "", "path to an alternative characteristic dataset")
	flag.Parse()

	opts := registry.Options{Classes: characteristics.Builtin()}
	if *specPath != "" {
		path := *specPath
		opts.Dataset = func() (*specdata.RawDataset, error) {
			return specdata.LoadCharacteristics(path)
		}
	}

	sh, err := newShell(registry.New(opts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sh.Run()
}
