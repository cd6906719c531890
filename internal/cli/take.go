package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"examctl/internal/config"
	"examctl/internal/lifecycle"
	"examctl/internal/ui/live"
	"examctl/internal/ui/plain"
)

// runTake builds the handler for the take command.
func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		uiMode := fs.String("ui", "", "UI mode (auto|live|plain)")
		exportDir := fs.String("export-dir", "", "Directory for result exports")
		verbose := fs.Bool("verbose", false, "Log to stderr (disables the live UI)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		id, ok := examIDArg(cmd, fs, stderr)
		if !ok {
			return ExitUsage
		}

		cfg, err := common.loadConfig(config.Overrides{UIMode: *uiMode, ExportDir: *exportDir})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		decision, err := resolveUIMode(cfg.UI.Mode, *verbose, stdin, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		var logFallback io.Writer
		if !decision.useLive {
			logFallback = stderr
		}
		log, closeLog, err := openLogger(cfg, logFallback)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := lifecycle.Options{
			ExamID:        id,
			API:           newClient(cfg, log),
			Logger:        log,
			PollInterval:  cfg.Exam.PollInterval,
			TickInterval:  cfg.Exam.TickInterval,
			FallbackTotal: cfg.Exam.DefaultQuestions,
		}
		if decision.useLive {
			err = takeLive(ctx, opts, cfg, stdout)
		} else {
			err = takePlain(ctx, opts, cfg, stdout, log)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Exam session failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// takeLive runs the controller behind the Bubble Tea UI. Leaving the UI
// stops the controller and the reverse.
func takeLive(ctx context.Context, opts lifecycle.Options, cfg config.Config, stdout io.Writer) error {
	ui := live.Start(nil, stdout, live.Options{NoColor: cfg.UI.NoColor, ExportDir: cfg.Exam.ExportDir})
	opts.Observer = ui

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-ui.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	err := lifecycle.New(opts).Run(runCtx, ui.Actions())
	ui.Close()
	return errors.Join(err, ui.Wait())
}

// takePlain runs the controller with the line driver on stdin/stdout.
func takePlain(ctx context.Context, opts lifecycle.Options, cfg config.Config, stdout io.Writer, log zerolog.Logger) error {
	driver := plain.New(stdout, plain.Options{ExportDir: cfg.Exam.ExportDir})
	opts.Observer = driver

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	actions := make(chan lifecycle.Action, 16)
	go func() {
		if err := driver.ReadActions(runCtx, stdin, actions); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("read input")
		}
	}()
	return lifecycle.New(opts).Run(runCtx, actions)
}
