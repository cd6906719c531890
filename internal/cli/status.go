package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"examctl/internal/apiclient"
	"examctl/internal/config"
	"examctl/internal/exam"
	"examctl/internal/timing"
)

// runStatus builds the handler for the status command.
func runStatus(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		asJSON := fs.Bool("json", false, "Print the raw status as JSON")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		id, ok := examIDArg(cmd, fs, stderr)
		if !ok {
			return ExitUsage
		}

		cfg, err := common.loadConfig(config.Overrides{})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		log, closeLog, err := openLogger(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer closeLog()

		report, err := newClient(cfg, log).GetStatus(context.Background(), id)
		if err != nil {
			fmt.Fprintf(stderr, "Status failed: %s\n", apiclient.Message(err))
			return ExitError
		}
		if *asJSON {
			payload, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				fmt.Fprintf(stderr, "Failed to encode status: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, string(payload))
			return ExitOK
		}
		printStatus(stdout, id, report)
		return ExitOK
	}
}

func printStatus(w io.Writer, id string, report exam.StatusReport) {
	fmt.Fprintf(w, "Exam      %s\n", id)
	fmt.Fprintf(w, "Mode      %s\n", report.Mode)
	fmt.Fprintf(w, "Status    %s\n", report.Status)
	if report.StartTime != nil {
		fmt.Fprintf(w, "Started   %s\n", report.StartTime.Format(time.RFC3339))
	}
	if report.EndTime != nil {
		fmt.Fprintf(w, "Ended     %s\n", report.EndTime.Format(time.RFC3339))
	}
	printMillis(w, "Elapsed", report.ElapsedTime)
	printMillis(w, "Remaining", report.RemainingTime)
	printMillis(w, "Total", report.TotalTime)
}

func printMillis(w io.Writer, label string, value *exam.Millis) {
	if value == nil {
		return
	}
	fmt.Fprintf(w, "%-9s %s\n", label, timing.FormatClock(value.Duration()))
}
