package live

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"examctl/internal/answers"
	"examctl/internal/lifecycle"
	"examctl/internal/result"
)

// renderHeader renders the exam header line.
func renderHeader(snap lifecycle.Snapshot, noColor bool) string {
	if snap.Exam.ID == "" {
		return stylize("examctl", noColor, colorAccent)
	}
	line := stylize("Exam "+snap.Exam.ID, noColor, colorAccent)
	if snap.Status != "" {
		line += " | " + formatStatus(snap.Status, noColor)
	}
	return line
}

// renderLoading renders the loading screen.
func renderLoading(spin string) string {
	return spin + " Loading exam..."
}

// renderFatal renders a load failure.
func renderFatal(snap lifecycle.Snapshot, noColor bool) string {
	return stylize("Could not load exam: "+snap.Fatal, noColor, colorCritical)
}

// renderStart renders the pending exam screen.
func renderStart(snap lifecycle.Snapshot, spin string, noColor bool) string {
	lines := []string{
		"Mode: " + formatMode(snap.Exam),
		fmt.Sprintf("Questions: %d", snap.Total),
		"",
		stylize("Open the exam PDF and mark each answer here with a-e.", noColor, colorMuted),
	}
	if snap.Timer() {
		lines = append(lines, stylize("Answers are submitted automatically when time runs out.", noColor, colorMuted))
	} else {
		lines = append(lines, stylize("Submit when you are done; the elapsed time is recorded.", noColor, colorMuted))
	}
	if snap.Starting {
		lines = append(lines, "", spin+" Starting...")
	}
	return strings.Join(lines, "\n")
}

// renderActive renders the answering screen.
func renderActive(m Model) string {
	snap := m.state.Snapshot
	lines := []string{formatTimer(snap, m.noColor)}
	if snap.Timer() {
		lines = append(lines, m.timeBar.ViewAs(snap.Progress))
	}
	answered := 0.0
	if snap.Total > 0 {
		answered = float64(snap.Answered) / float64(snap.Total)
	}
	lines = append(lines, formatAnswered(snap), m.answerBar.ViewAs(answered), "")
	lines = append(lines, renderGrid(m.state, m.noColor))
	if snap.Submitting {
		lines = append(lines, "", m.spinner.View()+" Submitting...")
	}
	body := strings.Join(lines, "\n")
	if snap.Confirming {
		body = lipgloss.JoinVertical(lipgloss.Left, body, renderConfirm(snap, m.noColor))
	}
	return body
}

// renderGrid renders the visible window of the answer grid.
func renderGrid(state State, noColor bool) string {
	snap := state.Snapshot
	last := min(state.Offset+state.Rows-1, snap.Total)
	rows := make([]string, 0, state.Rows)
	for q := state.Offset; q <= last; q++ {
		selected := snap.Answers[answers.Key(q)]
		rows = append(rows, formatQuestionRow(q, selected, q == state.Cursor, noColor))
	}
	return strings.Join(rows, "\n")
}

// renderConfirm renders the submit confirmation modal.
func renderConfirm(snap lifecycle.Snapshot, noColor bool) string {
	text := fmt.Sprintf("Submit %d of %d answers?\n\ny confirm   n cancel", snap.Answered, snap.Total)
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	if !noColor {
		style = style.BorderForeground(colorWarning)
	}
	return style.Render(text)
}

// renderResult renders the graded result screen.
func renderResult(snap lifecycle.Snapshot, filter result.Filter, details string, noColor bool) string {
	r := snap.Result
	tier := result.TierFor(r.Score)
	score := result.FormatScore(r.Score)
	if !noColor {
		score = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(result.ScoreColor(r.Score))).Render(score)
	}
	lines := []string{
		tier.Emoji + " " + score + " " + tier.Label,
		fmt.Sprintf("Correct %d | Wrong %d | Total %d | Time %s",
			r.CorrectAnswers, r.WrongAnswers, r.TotalQuestions, result.FormatTimeTaken(r.TimeTaken.Duration())),
	}
	if snap.AutoSubmitted {
		lines = append(lines, stylize("Submitted automatically when time ran out.", noColor, colorWarning))
	}
	lines = append(lines, "", stylize("Showing "+string(filter)+" questions", noColor, colorMuted), details)
	return strings.Join(lines, "\n")
}

// renderFinished renders a terminal exam without a result.
func renderFinished(snap lifecycle.Snapshot, noColor bool) string {
	line := "This exam has ended."
	if snap.AutoSubmitted {
		line = "Time ran out and your answers could not be submitted."
	}
	return stylize(line, noColor, colorDim)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
