package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "list":
		listCmd(cfg, args)
	case "extract":
		os.Exit(extractCmd(cfg, args))
	case "export":
		os.Exit(exportCmd(cfg, args))
	case "get":
		getCmd(cfg, args)
	case "send":
		sendCmd(cfg, args)
	case "mcp":
		mcpCmd(cfg, args)
	case "config":
		configCmd(cfg)
	case "-h", "help":
		printUsage()
	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `DX7 voice extractor. Decodes 32 voice bulk dumps (.syx) into 156 byte voice tables.
Usage: %s <command> [flags] [args]

Commands:
  list <file.syx>                   list the 32 voice names
  extract [flags] <file.syx> [n..]  render selected voices (C header, json or yaml)
  export [flags] <file.syx> [n..]   write selected voices as single voice .syx files
  get [flags]                       request a bulk dump from a connected DX7
  send [flags] <file.syx> <n>       send one voice to the DX7 edit buffer and play it
  send -json <voice.json>           send a voice written by extract -f json (or yaml)
  mcp                               serve the tools over MCP on stdio
  config                            write the default config file

Voice numbers are 1-32 and may be given as "1 4 5", "1,4,5" or "11-16".
`, filepath.Base(os.Args[0]))
}

func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.BoolVar(&verbose, "v", false, "Dump sent and received sysex bytes to standard error.")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n", filepath.Base(os.Args[0]), usage)
		fs.PrintDefaults()
	}
	return fs
}

// selectionArgs parses voice numbers from args, falling back to the
// configured selection.
func selectionArgs(cfg *Config, args []string) []int {
	if len(args) == 0 {
		return cfg.Selection
	}
	indices, err := ParseSelection(args)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return indices
}

// extractAll loads path and decodes indices, logging every per voice error.
// failed is true when any voice could not be decoded.
func extractAll(path string, indices []int) (dump *BulkDump, sel []Selection, failed bool) {
	dump, err := LoadBulkDump(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if sum, ok := dump.Checksum(); !ok {
		log.Printf("warning: %s: checksum 0x%02X missing or does not match voice data", path, sum)
	}

	sel, errs := Extract(dump, indices)
	for _, err := range errs {
		log.Printf("error: %v", err)
	}
	return dump, sel, len(errs) > 0
}

func newConfiguredRenderer(cfg *Config) (*Renderer, error) {
	if cfg.TemplateDir != "" {
		return NewRendererFromTemplates(cfg.TemplateDir)
	}
	return NewRenderer()
}

func listCmd(cfg *Config, args []string) {
	fs := newFlagSet("list", "list <file.syx>")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	dump, err := LoadBulkDump(fs.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Print(formatVoiceList(filepath.Base(fs.Arg(0)), dump))
}

func extractCmd(cfg *Config, args []string) int {
	fs := newFlagSet("extract", "extract [flags] <file.syx> [voices...]")
	format := fs.String("f", cfg.Format, "Output format: c, json or yaml.")
	outPath := fs.String("o", "", "File to write. By default output goes to standard output.")
	safe := fs.Bool("n", false, "Never overwrite files; if the output file already exists, give an error.")
	arrayName := fs.String("a", cfg.ArrayName, "Name of the C array.")
	tmplDir := fs.String("t", cfg.TemplateDir, "Use the templates in this directory instead of the built-in C header template.")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	path := fs.Arg(0)
	_, sel, failed := extractAll(path, selectionArgs(cfg, fs.Args()[1:]))

	var contents []byte
	switch *format {
	case "c", "h":
		cfg.TemplateDir = *tmplDir
		r, err := newConfiguredRenderer(cfg)
		if err != nil {
			log.Fatalf("error creating renderer: %v", err)
		}
		files, err := r.Render(NewVoiceTable(path, *arrayName, sel))
		if err != nil {
			log.Fatalf("%v", err)
		}
		header, ok := files[".h"]
		if !ok {
			log.Fatalf("no .h template in %s", *tmplDir)
		}
		contents = []byte(header)
	default:
		var err error
		contents, err = EncodeVoices(*format, sel)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if err := writeOutput(*outPath, *safe, contents); err != nil {
		log.Fatalf("%v", err)
	}
	if failed {
		return 1
	}
	return 0
}

// writeOutput writes contents to path, or standard output when path is empty.
func writeOutput(path string, safe bool, contents []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(contents)
		return err
	}
	if _, err := os.Stat(path); err == nil && safe {
		return errors.Errorf("file %v would be overwritten", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "could not create output directory %v", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(path, contents, 0644), "could not write file %v", path)
}

func exportCmd(cfg *Config, args []string) int {
	fs := newFlagSet("export", "export [flags] <file.syx> [voices...]")
	outDir := fs.String("o", "voices", "Directory for the single voice files.")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	dump, sel, failed := extractAll(fs.Arg(0), selectionArgs(cfg, fs.Args()[1:]))
	written, err := ExportVoices(*outDir, dump.Channel(), sel)
	for _, f := range written {
		fmt.Println(f)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if failed {
		return 1
	}
	return 0
}

func getCmd(cfg *Config, args []string) {
	fs := newFlagSet("get", "get [flags]")
	outPath := fs.String("o", "dx7.syx", "File to save the received bulk dump to.")
	safe := fs.Bool("n", false, "Never overwrite files.")
	fs.Parse(args)

	inPortIdx, err := findInPort(cfg.MIDI.InPort)
	if err != nil {
		log.Fatalf("could not find DX7 MIDI in port: %v", err)
	}
	dx7, closer, err := connect(cfg)
	if err != nil {
		log.Fatalf("failed to open DX7 output: %v", err)
	}
	defer closer()

	dump, err := dx7.RequestBulkDump(midi.GetInPorts()[inPortIdx])
	if err != nil {
		log.Fatalf("failed to read bulk dump: %v", err)
	}
	if names, err := dump.Names(); err == nil {
		log.Printf("Received voices: %s", strings.Join(names, ", "))
	}
	if err := writeOutput(*outPath, *safe, dump.Bytes()); err != nil {
		log.Fatalf("%v", err)
	}
}

func sendCmd(cfg *Config, args []string) {
	fs := newFlagSet("send", "send [flags] <file.syx> <voice> | send -json <voice.json|->")
	notes := fs.String("notes", defaultAuditionNotes, "Notes to play after sending, empty for none.")
	jsonPath := fs.String("json", "", "Send a voice from a JSON or YAML file as written by extract, - for standard input.")
	fs.Parse(args)

	var (
		u     UnpackedVoice
		label string
	)
	if *jsonPath != "" {
		if fs.NArg() != 0 {
			fs.Usage()
			os.Exit(2)
		}
		v, err := readVoiceFile(*jsonPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if u, err = v.Params(); err != nil {
			log.Fatalf("%v", err)
		}
		label = fmt.Sprintf("%q", v.Name)
	} else {
		if fs.NArg() != 2 {
			fs.Usage()
			os.Exit(2)
		}
		indices, err := ParseSelection(fs.Args()[1:])
		if err != nil || len(indices) != 1 {
			log.Fatalf("expected a single voice number, got %q", fs.Arg(1))
		}
		_, sel, failed := extractAll(fs.Arg(0), indices)
		if failed {
			os.Exit(1)
		}
		u = sel[0].Voice
		label = fmt.Sprintf("%d %q", sel[0].Index, sel[0].Name)
	}

	dx7, closer, err := connect(cfg)
	if err != nil {
		log.Fatalf("failed to open DX7 output: %v", err)
	}
	defer closer()

	log.Printf("Sending voice %s", label)
	if err := dx7.SendVoice(&u); err != nil {
		log.Fatalf("%v", err)
	}
	if *notes != "" {
		if err := auditionNotes(dx7, *notes); err != nil {
			log.Fatalf("failed to play notes: %v", err)
		}
	}
}

// readVoiceFile decodes a single voice from path, or from standard input
// when path is "-".
func readVoiceFile(path string) (*Voice, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not read voice %v", path)
	}
	v, err := DecodeVoice(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode voice %v", path)
	}
	return v, nil
}

func mcpCmd(cfg *Config, args []string) {
	fs := newFlagSet("mcp", "mcp")
	fs.Parse(args)

	// The tools that only read files work without a DX7.
	dx7, closer, err := connect(cfg)
	if err != nil {
		log.Printf("no DX7 output, sending voices is disabled: %v", err)
		dx7 = nil
	} else {
		defer closer()
	}
	runMCP(cfg, dx7)
}

func configCmd(cfg *Config) {
	path, err := ConfigPath()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Println(path)
		return
	}
	if err := cfg.Save(); err != nil {
		log.Fatalf("could not save config: %v", err)
	}
	fmt.Println(path)
}
