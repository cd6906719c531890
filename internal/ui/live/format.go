package live

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"examctl/internal/answers"
	"examctl/internal/exam"
	"examctl/internal/lifecycle"
	"examctl/internal/timing"
)

const (
	colorOK       = lipgloss.Color("42")
	colorCritical = lipgloss.Color("196")
	colorWarning  = lipgloss.Color("220")
	colorAccent   = lipgloss.Color("33")
	colorMuted    = lipgloss.Color("244")
	colorDim      = lipgloss.Color("240")
)

// optionForKey maps a pressed key to an answer option.
func optionForKey(pressed string) (string, bool) {
	switch pressed {
	case "1", "2", "3", "4", "5":
		return answers.Options[pressed[0]-'1'], true
	}
	return answers.NormalizeOption(pressed)
}

// formatMode renders the exam mode with its allowance.
func formatMode(e exam.Exam) string {
	if e.Mode == exam.ModeTimer {
		minutes := int(e.AllowedDuration().Minutes())
		return fmt.Sprintf("Timer (%d minutes)", minutes)
	}
	return "Stopwatch"
}

// formatStatus renders an exam status with its colour.
func formatStatus(status exam.Status, noColor bool) string {
	label := strings.ToUpper(string(status))
	switch status {
	case exam.StatusActive:
		return stylize(label, noColor, colorOK)
	case exam.StatusCompleted:
		return stylize(label, noColor, colorAccent)
	case exam.StatusExpired:
		return stylize(label, noColor, colorCritical)
	default:
		return stylize(label, noColor, colorMuted)
	}
}

// formatTimer renders the countdown or stopwatch line.
func formatTimer(snap lifecycle.Snapshot, noColor bool) string {
	if !snap.Timer() {
		return stylize("Elapsed   "+timing.FormatClock(snap.Elapsed), noColor, colorAccent)
	}
	line := "Remaining " + timing.FormatClock(snap.Remaining)
	switch {
	case snap.Critical:
		return stylize(line+"  less than a minute left", noColor, colorCritical)
	case snap.Warning:
		return stylize(line+"  less than five minutes left", noColor, colorWarning)
	default:
		return stylize(line, noColor, colorOK)
	}
}

// formatQuestionRow renders one answer-grid row.
func formatQuestionRow(question int, selected string, focused bool, noColor bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	cells := make([]string, 0, len(answers.Options))
	for _, option := range answers.Options {
		if option == selected {
			cells = append(cells, stylize("["+option+"]", noColor, colorOK))
			continue
		}
		cells = append(cells, " "+option+" ")
	}
	line := fmt.Sprintf("%s%3d  %s", marker, question, strings.Join(cells, " "))
	if focused {
		return stylize(line, noColor, colorAccent)
	}
	return line
}

// formatAnswered renders the answered counter.
func formatAnswered(snap lifecycle.Snapshot) string {
	return fmt.Sprintf("Answered  %d/%d", snap.Answered, snap.Total)
}
