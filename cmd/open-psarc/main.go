// Command open-psarc lists, extracts, and converts the contents of a PSARC
// archive: Rocksmith SNG entries to toolkit-style XML, and (when an audio
// converter is wired in) audio entries to an external format.
package main

import (
	"fmt"
	"os"

	"github.com/mogaika/open-psarc/archive"
)

const version = "open-psarc version 1.0.0"

func usage(w *os.File, prog string) {
	fmt.Fprintf(w, `Usage: %s [options] <psarc_file> [output_directory]

A tool for reading, extracting, and converting PSARC archives.

Arguments:
  psarc_file        Path to the .psarc file to open
  output_directory  Directory to extract or convert files to (optional)

Options:
  -h, --help           Show this help message
  -l, --list           List files only (don't extract)
  -q, --quiet          Suppress file listing during extraction
  -s, --convert-sng    Convert SNG entries to toolkit XML under output_directory
  -a, --convert-audio  Audio conversion; no audio converter is wired into
                       this build, so this option reports an error
  -v, --version        Show version information

Examples:
  %s archive.psarc                  List archive contents
  %s archive.psarc ./output         Extract all files to ./output
  %s -q archive.psarc ./output      Extract quietly
  %s -s archive.psarc ./output      Convert SNG entries to XML
`, prog, prog, prog, prog, prog)
}

type options struct {
	listOnly      bool
	quiet         bool
	convertSng    bool
	convertAudio  bool
	showHelp      bool
	showVersion   bool
	psarcPath     string
	outputDir     string
}

func parseArgs(args []string) (options, error) {
	var o options
	var positional []string

	for _, a := range args {
		switch a {
		case "-h", "--help":
			o.showHelp = true
		case "-v", "--version":
			o.showVersion = true
		case "-l", "--list":
			o.listOnly = true
		case "-q", "--quiet":
			o.quiet = true
		case "-s", "--convert-sng":
			o.convertSng = true
		case "-a", "--convert-audio":
			o.convertAudio = true
		default:
			if len(a) > 0 && a[0] == '-' {
				return o, fmt.Errorf("unknown option: %s", a)
			}
			positional = append(positional, a)
		}
	}

	if len(positional) > 0 {
		o.psarcPath = positional[0]
	}
	if len(positional) > 1 {
		o.outputDir = positional[1]
	}
	if len(positional) > 2 {
		return o, fmt.Errorf("too many arguments")
	}
	return o, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		usage(stderr, progName())
		return 1
	}

	if o.showHelp {
		usage(stdout, progName())
		return 0
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}
	if o.psarcPath == "" {
		usage(stderr, progName())
		return 1
	}

	a, err := archive.Open(o.psarcPath, archive.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	defer a.Close()

	fmt.Fprintf(stdout, "Archive: %s\n", o.psarcPath)
	fmt.Fprintf(stdout, "Files: %d\n", a.FileCount())

	shouldList := o.listOnly || o.outputDir == "" || !o.quiet
	if shouldList {
		fmt.Fprintln(stdout)
		for _, name := range a.FileList() {
			if e, ok := a.Entry(name); ok {
				fmt.Fprintf(stdout, "  %s (%d bytes)\n", name, e.UncompressedSize)
			}
		}
	}

	if o.outputDir == "" || o.listOnly {
		return 0
	}

	exitCode := 0

	if o.convertSng {
		fmt.Fprintf(stdout, "\nConverting SNG entries to: %s\n", o.outputDir)
		if err := a.ConvertSng(o.outputDir); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			exitCode = 1
		}
	}
	if o.convertAudio {
		fmt.Fprintln(stderr, "Error: no audio converter is wired into this build")
		exitCode = 1
	}
	if !o.convertSng && !o.convertAudio {
		fmt.Fprintf(stdout, "\nExtracting to: %s\n", o.outputDir)
		if err := a.ExtractAll(o.outputDir); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			exitCode = 1
		}
	}

	for _, m := range a.Log.Recent() {
		fmt.Fprintf(stdout, "[%s] %s\n", m.Level, m.Text)
	}

	if exitCode == 0 {
		fmt.Fprintln(stdout, "Done")
	}
	return exitCode
}

func progName() string {
	if len(os.Args) == 0 {
		return "open-psarc"
	}
	return os.Args[0]
}
