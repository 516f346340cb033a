// Command docxsdt is a minimal CLI front-end for the docxsdt engine. It
// owns one subcommand, clear, which strips content-control framing from a
// template and writes the result to a new file; mapping is driven
// programmatically by embedders, not from the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/xiamaz/docxsdt/pkg/docxsdt"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] != "clear" {
		fmt.Fprintln(os.Stderr, "usage: docxsdt clear --template-path <in> <output-path>")
		return 2
	}

	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	templatePath := fs.String("template-path", "", "path to the source .docx template")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *templatePath == "" || fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: docxsdt clear --template-path <in> <output-path>")
		return 2
	}
	outputPath := fs.Arg(0)

	data, err := os.ReadFile(*templatePath)
	if err != nil {
		color.Red("failed to read %s: %v", *templatePath, err)
		return 1
	}

	stripped, err := docxsdt.Strip(data)
	if err != nil {
		color.Red("failed to clear content controls: %v", err)
		return 1
	}

	// Write to a sibling temp file first and rename into place, so a
	// crash mid-write never leaves a half-written output-path behind.
	tmpPath := outputPath + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmpPath, stripped, 0o644); err != nil {
		color.Red("failed to write %s: %v", tmpPath, err)
		return 1
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		color.Red("failed to finalize %s: %v", outputPath, err)
		os.Remove(tmpPath)
		return 1
	}

	color.Green("wrote %s", outputPath)
	return 0
}
