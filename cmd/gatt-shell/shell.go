package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gattkit/gattkit-go/pkg/gatt"
	"github.com/gattkit/gattkit-go/pkg/registry"
)

// shell is the interactive command loop around one registry.
type shell struct {
	reg   *registry.Registry
	rl    *readline.Instance
	trace bool
}

func newShell(reg *registry.Registry) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "gatt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &shell{reg: reg, rl: rl}, nil
}

// Run reads and dispatches commands until EOF or quit.
func (s *shell) Run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "decode", "d":
			s.cmdDecode(args)

		case "build", "b":
			s.cmdBuild(args)

		case "info", "i":
			s.cmdInfo(args)

		case "list", "ls":
			s.cmdList()

		case "trace":
			s.cmdTrace(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprint(s.rl.Stdout(), `
GATT Shell Commands:
  decode <id> <hex>   - Decode raw bytes (hex, spaces allowed)
  build <id> <value>  - Encode a numeric value to bytes
  info <id>           - Show characteristic metadata
  list                - List known characteristics
  trace on|off        - Toggle parse tracing
  quit                - Exit
`)
}

// resolve maps an identifier spelling to metadata and decoder.
func (s *shell) resolve(id string) (registry.Metadata, gatt.Characteristic, bool) {
	meta, ok := s.reg.Lookup(id)
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown characteristic %q\n", id)
		return registry.Metadata{}, nil, false
	}
	ch, ok := s.reg.ResolveClass(meta.UUID)
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "No decoder for %s (%s)\n", meta.UUID, meta.Name)
		return meta, nil, false
	}
	return meta, ch, true
}

func (s *shell) cmdDecode(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: decode <id> <hex>")
		return
	}
	meta, ch, ok := s.resolve(args[0])
	if !ok {
		return
	}
	raw, err := parseHex(strings.Join(args[1:], ""))
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid hex: %v\n", err)
		return
	}

	res := gatt.Parse(ch, raw, nil, gatt.ParseOptions{Trace: s.trace})
	if res.OK {
		if meta.Unit != "" {
			fmt.Fprintf(s.rl.Stdout(), "%s = %v %s\n", meta.Name, res.Value, meta.Unit)
		} else {
			fmt.Fprintf(s.rl.Stdout(), "%s = %v\n", meta.Name, res.Value)
		}
	} else {
		fmt.Fprintf(s.rl.Stdout(), "%s failed: %s: %s\n", meta.Name, res.Kind, res.Message)
		for _, fe := range res.FieldErrors {
			fmt.Fprintf(s.rl.Stdout(), "  field %s at offset %d: %v\n", fe.Field, fe.Offset, fe.Err)
		}
	}
	for _, step := range res.Trace {
		fmt.Fprintf(s.rl.Stdout(), "  | %s\n", step)
	}
}

func (s *shell) cmdBuild(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: build <id> <value>")
		return
	}
	meta, ch, ok := s.resolve(args[0])
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid value: %v\n", err)
		return
	}

	buf, err := gatt.Build(ch, v)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "%s build failed: %v\n", meta.Name, err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s = %s\n", meta.Name, hex.EncodeToString(buf))
}

func (s *shell) cmdInfo(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: info <id>")
		return
	}
	meta, ok := s.reg.Lookup(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown characteristic %q\n", args[0])
		return
	}

	out := s.rl.Stdout()
	fmt.Fprintf(out, "UUID:       %s\n", meta.UUID)
	fmt.Fprintf(out, "Name:       %s\n", meta.Name)
	if meta.Identifier != "" {
		fmt.Fprintf(out, "Identifier: %s\n", meta.Identifier)
	}
	if meta.Unit != "" {
		fmt.Fprintf(out, "Unit:       %s\n", meta.Unit)
	}
	fmt.Fprintf(out, "Type:       %s\n", meta.Type)
	if len(meta.Properties) > 0 {
		fmt.Fprintf(out, "Properties: %s\n", strings.Join(meta.Properties, ", "))
	}
	if meta.Custom {
		fmt.Fprintln(out, "Custom:     yes")
	}
	if ch, ok := s.reg.ResolveClass(meta.UUID); ok {
		c := ch.Constraints()
		switch {
		case c.ExactLength > 0:
			fmt.Fprintf(out, "Length:     %d\n", c.ExactLength)
		case c.MaxLength > 0:
			fmt.Fprintf(out, "Length:     %d-%d\n", c.MinLength, c.MaxLength)
		default:
			fmt.Fprintf(out, "Length:     %d+\n", c.MinLength)
		}
		if deps := ch.Dependencies(); !deps.Empty() {
			for _, u := range deps.Required {
				fmt.Fprintf(out, "Requires:   %s\n", u)
			}
			for _, u := range deps.Optional {
				fmt.Fprintf(out, "Optional:   %s\n", u)
			}
		}
	} else {
		fmt.Fprintln(out, "Decoder:    none")
	}
}

func (s *shell) cmdList() {
	uuids := s.reg.UUIDs()
	type row struct {
		uuid, name string
		decoder    bool
	}
	rows := make([]row, 0, len(uuids))
	for _, u := range uuids {
		meta, _ := s.reg.Resolve(u)
		_, bound := s.reg.ResolveClass(u)
		rows = append(rows, row{uuid: u.String(), name: meta.Name, decoder: bound})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].uuid < rows[j].uuid })

	for _, r := range rows {
		mark := " "
		if r.decoder {
			mark = "*"
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s %-40s %s\n", mark, r.uuid, r.name)
	}
	fmt.Fprintf(s.rl.Stdout(), "%d characteristics, * = decoder available\n", len(rows))
}

func (s *shell) cmdTrace(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(s.rl.Stdout(), "Usage: trace on|off")
		return
	}
	s.trace = args[0] == "on"
	fmt.Fprintf(s.rl.Stdout(), "Tracing %s\n", args[0])
}

// parseHex accepts "6409", "64 09", and "0x64 0x09".
func parseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, "0X", "")
	s = strings.NewReplacer(" ", "", ":", "", ",", "").Replace(s)
	return hex.DecodeString(s)
}
