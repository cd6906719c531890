package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"examctl/internal/exam"
	"examctl/internal/result"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle().Bold(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// detailColumns are the result table columns.
func detailColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Your answer", Width: 12},
		{Title: "Correct", Width: 8},
		{Title: "Result", Width: 10},
	}
}

// rowsForResult converts graded details into table rows, ordered by question
// number and narrowed by filter.
func rowsForResult(r *exam.Result, filter result.Filter) []table.Row {
	if r == nil {
		return nil
	}
	details := result.FilterDetails(result.SortedDetails(r.Details), filter)
	rows := make([]table.Row, 0, len(details))
	for _, detail := range details {
		answer := detail.UserAnswer
		if answer == "" {
			answer = "-"
		}
		outcome := "wrong"
		if detail.IsCorrect {
			outcome = "correct"
		}
		rows = append(rows, table.Row{detail.QuestionNumber, answer, detail.CorrectAnswer, outcome})
	}
	return rows
}
