// Package plain is the line-oriented front end for non-interactive
// terminals: it prints state changes and reads one command per line.
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"examctl/internal/exam"
	"examctl/internal/lifecycle"
	"examctl/internal/report"
	"examctl/internal/result"
	"examctl/internal/timing"
)

// Options configures a Driver.
type Options struct {
	ExportDir string
	Now       func() time.Time
}

// Driver prints controller snapshots and turns input lines into actions.
// It implements lifecycle.Observer.
type Driver struct {
	mu   sync.Mutex
	out  io.Writer
	opts Options
	last lifecycle.Snapshot
	seen bool
}

// New creates a driver writing to out.
func New(out io.Writer, opts Options) *Driver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Driver{out: out, opts: opts}
}

// OnSnapshot prints what changed since the previous snapshot.
func (d *Driver) OnSnapshot(snap lifecycle.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, seen := d.last, d.seen
	d.last, d.seen = snap, true

	if !seen || prev.View != snap.View {
		d.printView(snap)
		return
	}
	if snap.Error != "" && snap.Error != prev.Error {
		d.printf("error: %s\n", snap.Error)
	}
	if snap.Starting && !prev.Starting {
		d.printf("starting...\n")
	}
	if snap.Submitting && !prev.Submitting {
		d.printf("submitting...\n")
	}
	if snap.Answered != prev.Answered {
		d.printf("answered %d/%d\n", snap.Answered, snap.Total)
	}
	if snap.Confirming && !prev.Confirming {
		d.printf("Submit %d of %d answers? (yes/no)\n", snap.Answered, snap.Total)
	}
	if snap.Timer() {
		if snap.Warning && !prev.Warning {
			d.printf("warning: %s remaining\n", timing.FormatClock(snap.Remaining))
		}
		if snap.Critical && !prev.Critical {
			d.printf("hurry: %s remaining\n", timing.FormatClock(snap.Remaining))
		}
	}
}

// ReadActions parses lines from in and sends the resulting actions until
// EOF or ctx is done, then closes actions. Local commands are handled here.
func (d *Driver) ReadActions(ctx context.Context, in io.Reader, actions chan<- lifecycle.Action) error {
	defer close(actions)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			d.locked(func() { d.printf("error: %v\n", err) })
			continue
		}
		switch {
		case cmd.Help:
			d.locked(func() { d.printf("%s\n", helpText) })
		case cmd.Export != "":
			d.export(ctx, cmd.Export)
		case cmd.Action != nil:
			select {
			case actions <- *cmd.Action:
			case <-ctx.Done():
				return ctx.Err()
			}
			if cmd.Action.Kind == lifecycle.ActionQuit {
				return nil
			}
		}
	}
	return scanner.Err()
}

func (d *Driver) export(ctx context.Context, format string) {
	d.mu.Lock()
	snap := d.last
	d.mu.Unlock()
	if snap.Result == nil {
		d.locked(func() { d.printf("error: no result to export\n") })
		return
	}
	doc := result.NewDocument(*snap.Result, snap.Exam.Mode, d.opts.Now())
	path, err := writeExport(ctx, d.opts.ExportDir, format, doc)
	d.locked(func() {
		if err != nil {
			d.printf("error: export failed: %v\n", err)
			return
		}
		d.printf("saved %s\n", path)
	})
}

func writeExport(ctx context.Context, dir, format string, doc result.Document) (string, error) {
	if format == "json" {
		return result.WriteFile(dir, doc)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return report.WriteHTML(ctx, dir, doc, result.FilterAll)
}

func (d *Driver) printView(snap lifecycle.Snapshot) {
	switch snap.View {
	case lifecycle.ViewLoading:
		d.printf("loading exam...\n")
	case lifecycle.ViewError:
		d.printf("error: could not load exam: %s\ntype 'reload' to retry or 'quit' to leave\n", snap.Fatal)
	case lifecycle.ViewStart:
		d.printf("exam %s\nmode: %s\nquestions: %d\ntype 'start' to begin\n", snap.Exam.ID, describeMode(snap.Exam), snap.Total)
	case lifecycle.ViewActive:
		d.printf("exam started, %d questions; answer with '<n> <a-e>'\n", snap.Total)
		if snap.Timer() {
			d.printf("time remaining %s\n", timing.FormatClock(snap.Remaining))
		} else {
			d.printf("stopwatch running; type 'submit' when done\n")
		}
	case lifecycle.ViewResult:
		d.printResult(snap)
	case lifecycle.ViewFinished:
		if snap.AutoSubmitted {
			d.printf("time ran out and your answers could not be submitted\n")
		} else {
			d.printf("exam has ended (%s)\n", snap.Status)
		}
	}
}

func (d *Driver) printResult(snap lifecycle.Snapshot) {
	r := snap.Result
	tier := result.TierFor(r.Score)
	if snap.AutoSubmitted {
		d.printf("time is up, answers submitted automatically\n")
	}
	d.printf("score %s %s %s\n", result.FormatScore(r.Score), tier.Emoji, tier.Label)
	d.printf("correct %d, wrong %d, total %d, time %s\n",
		r.CorrectAnswers, r.WrongAnswers, r.TotalQuestions, result.FormatTimeTaken(r.TimeTaken.Duration()))
	for _, detail := range result.SortedDetails(r.Details) {
		answer := detail.UserAnswer
		if answer == "" {
			answer = "-"
		}
		outcome := "wrong"
		if detail.IsCorrect {
			outcome = "correct"
		}
		d.printf("%4s  %s  %s  %s\n", detail.QuestionNumber, answer, detail.CorrectAnswer, outcome)
	}
	d.printf("type 'export json' or 'export html' to save, 'quit' to leave\n")
}

func describeMode(e exam.Exam) string {
	if e.Mode == exam.ModeTimer {
		return fmt.Sprintf("timer, %d minutes", int(e.AllowedDuration().Minutes()))
	}
	return "stopwatch"
}

func (d *Driver) locked(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}
