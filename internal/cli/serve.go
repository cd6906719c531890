package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"examctl/internal/config"
	"examctl/internal/reportserver"
)

// serveReport is a test seam for running the result server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		exportDir := fs.String("export-dir", "", "Directory containing result exports")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		cfg, err := common.loadConfig(config.Overrides{ExportDir: *exportDir})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		if info, err := os.Stat(cfg.Exam.ExportDir); err != nil || !info.IsDir() {
			fmt.Fprintf(stderr, "Export directory not found: %s\n", cfg.Exam.ExportDir)
			return ExitError
		}
		log, closeLog, err := openLogger(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		srvCfg := reportserver.Config{
			Addr:      *addr,
			ExportDir: cfg.Exam.ExportDir,
			Logger:    log,
		}
		fmt.Fprintf(stdout, "Serving results at http://%s\n", srvCfg.Addr)
		if err := serveReport(ctx, srvCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
