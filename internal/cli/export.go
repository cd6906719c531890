package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"examctl/internal/config"
	"examctl/internal/report"
	"examctl/internal/result"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		format := fs.String("format", "html", "Output format (json|html)")
		filterName := fs.String("filter", "all", "Questions to include in HTML (all|correct|incorrect)")
		outputPath := fs.String("output", "", "Output file or directory (json defaults to stdout)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Expected exactly one <result.json|exam-id|dir>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		filter, err := result.ParseFilter(*filterName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		normalizedFormat := strings.ToLower(strings.TrimSpace(*format))
		if normalizedFormat != "json" && normalizedFormat != "html" {
			fmt.Fprintf(stderr, "invalid format %q (expected json|html)\n", *format)
			return ExitUsage
		}

		cfg, err := common.loadConfig(config.Overrides{})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		doc, sourcePath, err := report.ResolveExport(cfg.Exam.ExportDir, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load result: %v\n", err)
			return ExitError
		}

		if normalizedFormat == "json" {
			return writeJSONExport(doc, *outputPath, stdout, stderr)
		}
		target := *outputPath
		if target == "" {
			target = filepath.Dir(sourcePath)
		}
		written, err := report.WriteHTML(context.Background(), target, doc, filter)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", written)
		return ExitOK
	}
}

// writeJSONExport re-encodes the document to stdout, a directory or a file.
func writeJSONExport(doc result.Document, output string, stdout, stderr io.Writer) int {
	if output == "" {
		payload, err := result.Marshal(doc)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode result: %v\n", err)
			return ExitError
		}
		_, _ = stdout.Write(payload)
		return ExitOK
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		written, err := result.WriteFile(output, doc)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write result: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Result written to %s\n", written)
		return ExitOK
	}
	payload, err := result.Marshal(doc)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to encode result: %v\n", err)
		return ExitError
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		fmt.Fprintf(stderr, "Failed to write result: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Result written to %s\n", output)
	return ExitOK
}
