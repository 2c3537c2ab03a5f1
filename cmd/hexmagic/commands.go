package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexmagic/hexmagic-go/internal/hexfmt"
	"github.com/hexmagic/hexmagic-go/internal/logging"
	"github.com/hexmagic/hexmagic-go/pkg/hexstruct"
	"github.com/hexmagic/hexmagic-go/pkg/layout"
	"github.com/hexmagic/hexmagic-go/pkg/pattern"
	"github.com/hexmagic/hexmagic-go/pkg/tracelog"
)

// Decode command flags
var (
	inputPath string
	hexInput  string
	traceFile string
)

// Trace command flags
var (
	filterSession string
	filterStruct  string
	filterField   string
	filterOutcome string
)

// Show command flags
var showPattern string

func init() {
	for _, c := range []*cobra.Command{decodeCmd, checkCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (default stdin)")
		c.Flags().StringVarP(&hexInput, "hex", "x", "", "Input as a hex string instead of a file")
		c.Flags().StringVar(&traceFile, "trace", "", "Append per-directive trace events to this file")
	}

	showCmd.Flags().Bool("types", false, "List converter type names and exit")
	showCmd.Flags().StringVarP(&showPattern, "pattern", "p", "", "Compile a hex pattern and show its segments")

	traceCmd.Flags().StringVar(&filterSession, "session", "", "Filter by parse session ID")
	traceCmd.Flags().StringVar(&filterStruct, "struct", "", "Filter by struct name")
	traceCmd.Flags().StringVar(&filterField, "field", "", "Filter by field name")
	traceCmd.Flags().StringVar(&filterOutcome, "outcome", "", "Filter by outcome (match, mismatch, source_error, convert_error)")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(replCmd)
}

// decodeCmd matches a struct layout against input and prints the fields
var decodeCmd = &cobra.Command{
	Use:   "decode <struct>",
	Short: "Decode input against a struct layout",
	Long: `Decode binary input against a named struct from the layout file.

The struct's patterns are checked in order against exact-width windows
pulled from the input. On success the captured fields are printed in
declaration order; on mismatch the offending byte and offset are
reported.`,
	Example: `  # Decode a file
  hexmagic decode telemetry --layout layouts.yaml --input frame.bin

  # Decode a hex string
  hexmagic decode telemetry -l layouts.yaml -x "48 45 58 00 01 02 00 AA BB CC DD"

  # Decode stdin with trace output
  cat frame.bin | hexmagic decode telemetry -l layouts.yaml --trace trace.cbor`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	def, err := loadStruct(args[0])
	if err != nil {
		return err
	}

	r, closeInput, err := openInput()
	if err != nil {
		return err
	}
	defer closeInput()

	res, err := parseWithTrace(def, r)
	logging.LogDecode(def.Name(), def.Width(), err)
	if err != nil {
		return err
	}

	f := hexfmt.NewFormatter()
	for _, line := range f.FormatResult(res) {
		fmt.Println(line)
	}
	return nil
}

// checkCmd matches a struct layout without printing fields
var checkCmd = &cobra.Command{
	Use:   "check <struct>",
	Short: "Check input against a struct layout",
	Long: `Check that binary input matches a named struct from the layout file.

Prints nothing on success and exits non-zero with the mismatch details
otherwise. Useful in scripts and pipelines.`,
	Example: `  # Verify a file header
  hexmagic check telemetry -l layouts.yaml -i frame.bin && echo ok`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	def, err := loadStruct(args[0])
	if err != nil {
		return err
	}

	r, closeInput, err := openInput()
	if err != nil {
		return err
	}
	defer closeInput()

	_, err = parseWithTrace(def, r)
	logging.LogDecode(def.Name(), def.Width(), err)
	return err
}

// showCmd displays compiled struct layouts
var showCmd = &cobra.Command{
	Use:   "show [struct]",
	Short: "Show compiled struct layouts and patterns",
	Long: `Display the compiled form of struct layouts and patterns.

Without arguments, lists the structs in the layout file. With a struct
name, prints its width and the compiled segments of every field. With
--pattern, compiles an ad-hoc hex pattern instead of reading a layout.`,
	Example: `  # List structs
  hexmagic show -l layouts.yaml

  # Show one struct's compiled segments
  hexmagic show telemetry -l layouts.yaml

  # Compile an ad-hoc pattern
  hexmagic show -p "AABB ____ C_"

  # List available converter types
  hexmagic show --types`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if types, _ := cmd.Flags().GetBool("types"); types {
		for _, name := range hexstruct.ConverterNames() {
			fmt.Println(name)
		}
		return nil
	}

	if showPattern != "" {
		p, err := pattern.Compile(showPattern)
		if err != nil {
			return err
		}
		for _, line := range hexfmt.NewFormatter().DescribePattern(p) {
			fmt.Println(line)
		}
		return nil
	}

	file, err := loadLayout()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, name := range file.StructNames() {
			fmt.Println(name)
		}
		return nil
	}

	s, ok := file.Struct(args[0])
	if !ok {
		return fmt.Errorf("struct %q not found in layout", args[0])
	}
	def, err := s.Compile()
	if err != nil {
		return err
	}

	f := hexfmt.NewFormatter()
	for _, line := range f.DescribeDef(def) {
		fmt.Println(line)
	}
	return nil
}

// traceCmd reads back trace event files
var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Print trace events from a trace file",
	Long: `Print the per-directive trace events recorded by --trace.

Events can be filtered by session, struct, field, and outcome.`,
	Example: `  # All events
  hexmagic trace trace.cbor

  # Only mismatches for one struct
  hexmagic trace trace.cbor --struct telemetry --outcome mismatch`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	filter := tracelog.Filter{
		SessionID: filterSession,
		Struct:    filterStruct,
		Field:     filterField,
	}
	if filterOutcome != "" {
		outcome, ok := tracelog.ParseOutcome(filterOutcome)
		if !ok {
			return fmt.Errorf("unknown outcome %q", filterOutcome)
		}
		filter.Outcome = &outcome
	}

	r, err := tracelog.NewFilteredReader(args[0], filter)
	if err != nil {
		return err
	}
	defer r.Close()

	f := hexfmt.NewFormatter()
	for {
		event, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading trace: %w", err)
		}
		fmt.Println(formatEvent(f, event))
	}
}

// formatEvent renders one trace event as a single line.
func formatEvent(f *hexfmt.Formatter, e tracelog.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Timestamp.Format("15:04:05.000"), e.SessionID)
	if e.Struct != "" {
		fmt.Fprintf(&b, " %s", e.Struct)
	}
	label := e.Field
	if label == "" {
		label = "(padding)"
	}
	fmt.Fprintf(&b, " [%d] %s @%d+%d %s", e.Index, label, e.Offset, e.Width, e.Outcome)
	if len(e.Bytes) > 0 {
		fmt.Fprintf(&b, " %s", f.FormatBytes(e.Bytes))
	}
	if e.Error != "" {
		fmt.Fprintf(&b, ": %s", e.Error)
	}
	return b.String()
}

// loadLayout loads the layout file named by --layout or the config.
func loadLayout() (*layout.File, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if cfg.LayoutPath == "" {
		return nil, fmt.Errorf("no layout file: use --layout or set layout_path in the config")
	}

	file, err := layout.Load(cfg.LayoutPath)
	if err != nil {
		return nil, err
	}
	logging.Info("Layout loaded",
		zap.String("path", cfg.LayoutPath),
		zap.Int("structs", len(file.Structs)),
	)
	return file, nil
}

// loadStruct loads the layout and compiles one struct from it.
func loadStruct(name string) (*hexstruct.Def, error) {
	file, err := loadLayout()
	if err != nil {
		return nil, err
	}
	s, ok := file.Struct(name)
	if !ok {
		return nil, fmt.Errorf("struct %q not found in layout", name)
	}
	return s.Compile()
}

// openInput returns the decode input reader: --hex, --input, or stdin.
func openInput() (io.Reader, func(), error) {
	if hexInput != "" && inputPath != "" {
		return nil, nil, fmt.Errorf("--hex and --input are mutually exclusive")
	}

	if hexInput != "" {
		data, err := decodeHexInput(hexInput)
		if err != nil {
			return nil, nil, err
		}
		logging.LogRawBytes("Hex input", data)
		return bytes.NewReader(data), func() {}, nil
	}

	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { f.Close() }, nil
	}

	return os.Stdin, func() {}, nil
}

// decodeHexInput parses a hex string, ignoring whitespace between pairs.
func decodeHexInput(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// parseWithTrace runs the parse, attaching a trace logger when a trace
// file is configured via flag or config.
func parseWithTrace(def *hexstruct.Def, r io.Reader) (*hexstruct.Result, error) {
	path := traceFile
	if path == "" {
		cfg, err := resolveConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.TraceFile
	}

	if path == "" {
		return def.Parse(r)
	}

	logger, err := tracelog.NewFileLogger(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer logger.Close()

	return def.ParseTraced(r, logger)
}
