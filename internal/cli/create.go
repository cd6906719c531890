package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"examctl/internal/apiclient"
	"examctl/internal/config"
	"examctl/internal/exam"
	"examctl/internal/upload"
	"examctl/internal/validate"
)

// runCreate builds the handler for the create command.
func runCreate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		mode := fs.String("mode", "", "Exam mode (timer|stopwatch)")
		duration := fs.Int("duration", 0, "Time limit in minutes (timer mode)")
		examPath := fs.String("exam", "", "Exam PDF")
		keyPath := fs.String("answer-key", "", "Answer key (PDF or text)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		form := upload.Form{
			Mode:            exam.Mode(strings.ToLower(strings.TrimSpace(*mode))),
			DurationMinutes: *duration,
			ExamPDF:         *examPath,
			AnswerKey:       *keyPath,
		}
		req, closeFiles, err := form.Open()
		if err != nil {
			var verr *validate.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(stderr, "Invalid exam:")
				printIssues(stderr, verr)
				return ExitUsage
			}
			fmt.Fprintf(stderr, "Failed to read files: %v\n", err)
			return ExitError
		}
		defer closeFiles()

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

		resp, err := newClient(cfg, log).CreateExam(context.Background(), req)
		if err != nil {
			fmt.Fprintf(stderr, "Create failed: %s\n", apiclient.Message(err))
			return ExitError
		}
		fmt.Fprintf(stdout, "Created exam %s (%s)\n", resp.Exam.ID, resp.Exam.Mode)
		if resp.Exam.Mode == exam.ModeTimer {
			fmt.Fprintf(stdout, "Time limit: %d minutes\n", int(resp.Exam.AllowedDuration().Minutes()))
		}
		fmt.Fprintf(stdout, "Take it with: examctl take %s\n", resp.Exam.ID)
		return ExitOK
	}
}
