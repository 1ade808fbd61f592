// Command hwpmd converts HWP, HWPX and PDF documents to Markdown or plain
// text.
//
//	hwpmd document.hwp                 # Markdown to stdout
//	hwpmd -f text -o out.txt doc.hwpx  # plain text to a file
//	hwpmd -list-formats
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/hanpama/hwpmd"
)

func main() {
	stderr := colorable.NewColorableStderr()
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
	os.Exit(run(os.Args[1:], os.Stdout, stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hwpmd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "output file (default stdout)")
	format := fs.String("f", "markdown", "output format")
	listFormats := fs.Bool("list-formats", false, "list supported input and output formats")
	verbose := fs.Bool("v", false, "log decoding details to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hwpmd [flags] <file>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	errorf := color.New(color.FgRed, color.Bold).FprintfFunc()
	okf := color.New(color.FgGreen).FprintfFunc()

	log := zap.NewNop()
	if *verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			errorf(stderr, "error: logger: %v\n", err)
			return 1
		}
		defer l.Sync()
		log = l
	}
	reg := hwpmd.NewRegistry(hwpmd.WithLogger(log))

	if *listFormats {
		printFormats(stdout, reg)
		return 0
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}
	input := fs.Arg(0)

	if *output != "" {
		if err := hwpmd.Convert(input, *output, *format, hwpmd.WithLogger(log)); err != nil {
			errorf(stderr, "error: %v\n", err)
			return 1
		}
		okf(stderr, "converted: %s\n", *output)
		return 0
	}

	doc, err := reg.Parse(input)
	if err != nil {
		errorf(stderr, "error: %v\n", err)
		return 1
	}
	if err := reg.Write(stdout, doc, *format); err != nil {
		errorf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printFormats(w io.Writer, reg *hwpmd.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Direction", "Formats"})
	for _, ext := range reg.SupportedExtensions() {
		t.AppendRow(table.Row{"input", ext})
	}
	for _, name := range reg.SupportedFormats() {
		t.AppendRow(table.Row{"output", name})
	}
	t.Render()
}
