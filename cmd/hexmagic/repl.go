package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/hexmagic/hexmagic-go/internal/hexfmt"
	"github.com/hexmagic/hexmagic-go/pkg/hexstruct"
	"github.com/hexmagic/hexmagic-go/pkg/layout"
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"shell"},
	Short:   "Interactive pattern tester",
	Long: `An interactive shell for exploring layouts and decoding hex input.

Loads the configured layout file (if any) and accepts compile and
decode commands against hex strings typed at the prompt.`,
	RunE: runRepl,
}

// shell handles the interactive mode.
type shell struct {
	file      *layout.File
	defs      map[string]*hexstruct.Def
	formatter *hexfmt.Formatter
	rl        *readline.Instance
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hexmagic> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}

	s := &shell{
		formatter: hexfmt.NewFormatter(),
		rl:        rl,
	}

	// Best effort: a shell without a layout is still useful for
	// loading one interactively.
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.LayoutPath != "" {
		if err := s.cmdLoad([]string{cfg.LayoutPath}); err != nil {
			fmt.Fprintf(rl.Stderr(), "Warning: %v\n", err)
		}
	}

	s.run()
	return nil
}

// run starts the interactive command loop.
func (s *shell) run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
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

		var cmdErr error
		switch cmd {
		case "help", "?":
			s.printHelp()

		case "load":
			cmdErr = s.cmdLoad(args)

		case "list", "ls":
			cmdErr = s.cmdList()

		case "show", "s":
			cmdErr = s.cmdShow(args)

		case "compile", "p":
			cmdErr = s.cmdCompile(args)

		case "decode", "d":
			cmdErr = s.cmdDecode(args)

		case "check", "c":
			cmdErr = s.cmdCheck(args)

		case "types", "t":
			s.cmdTypes()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintf(s.rl.Stderr(), "Error: %v\n", cmdErr)
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Hexmagic Shell Commands:
  load <path>           - Load a layout file (YAML)
  list                  - List structs in the loaded layout
  show <struct>         - Show a struct's compiled segments
  compile <pattern>     - Compile a hex pattern and show its segments
  decode <struct> <hex> - Decode a hex string and print the fields
  check <struct> <hex>  - Check a hex string without printing fields
  types                 - List converter type names
  help                  - Show this help
  quit                  - Exit the shell`)
}

func (s *shell) cmdLoad(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <path>")
	}

	file, err := layout.Load(args[0])
	if err != nil {
		return err
	}
	defs, err := file.Compile()
	if err != nil {
		return err
	}

	s.file = file
	s.defs = defs
	fmt.Fprintf(s.rl.Stdout(), "Loaded %d struct(s) from %s\n", len(defs), args[0])
	return nil
}

func (s *shell) cmdList() error {
	if s.file == nil {
		return fmt.Errorf("no layout loaded (use 'load <path>')")
	}
	for _, name := range s.file.StructNames() {
		def := s.defs[name]
		fmt.Fprintf(s.rl.Stdout(), "%s (%d bytes)\n", name, def.Width())
	}
	return nil
}

func (s *shell) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <struct>")
	}
	def, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	for _, line := range s.formatter.DescribeDef(def) {
		fmt.Fprintln(s.rl.Stdout(), line)
	}
	return nil
}

func (s *shell) cmdCompile(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: compile <pattern>")
	}
	p, err := pattern.Compile(strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, line := range s.formatter.DescribePattern(p) {
		fmt.Fprintln(s.rl.Stdout(), line)
	}
	return nil
}

func (s *shell) cmdDecode(args []string) error {
	res, err := s.parseArgs(args, "decode")
	if err != nil {
		return err
	}
	for _, line := range s.formatter.FormatResult(res) {
		fmt.Fprintln(s.rl.Stdout(), line)
	}
	return nil
}

func (s *shell) cmdCheck(args []string) error {
	if _, err := s.parseArgs(args, "check"); err != nil {
		return err
	}
	fmt.Fprintln(s.rl.Stdout(), "match")
	return nil
}

// parseArgs resolves "<struct> <hex...>" arguments and runs the parse.
func (s *shell) parseArgs(args []string, verb string) (*hexstruct.Result, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("usage: %s <struct> <hex>", verb)
	}
	def, err := s.lookup(args[0])
	if err != nil {
		return nil, err
	}
	data, err := decodeHexInput(strings.Join(args[1:], " "))
	if err != nil {
		return nil, err
	}

	res, err := def.Parse(bytes.NewReader(data))
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return nil, fmt.Errorf("input too short: have %d byte(s), struct needs %d", len(data), def.Width())
	}
	return res, err
}

func (s *shell) cmdTypes() {
	for _, name := range hexstruct.ConverterNames() {
		fmt.Fprintln(s.rl.Stdout(), name)
	}
}

func (s *shell) lookup(name string) (*hexstruct.Def, error) {
	if s.file == nil {
		return nil, fmt.Errorf("no layout loaded (use 'load <path>')")
	}
	def, ok := s.defs[name]
	if !ok {
		return nil, fmt.Errorf("struct %q not found (use 'list')", name)
	}
	return def, nil
}
