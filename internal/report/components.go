package report

import (
	"net/url"

	"github.com/a-h/templ"

	"examctl/internal/exam"
	"examctl/internal/result"
)

func modeLabel(mode exam.Mode) string {
	switch mode {
	case exam.ModeTimer:
		return "Timer mode"
	case exam.ModeStopwatch:
		return "Stopwatch mode"
	default:
		return string(mode)
	}
}

// scoreBand names the colour band of a score; the page stylesheet maps
// bands to result.ScoreColor's colours.
func scoreBand(score float64) string {
	switch result.ScoreColor(score) {
	case result.ColorGood:
		return "good"
	case result.ColorFair:
		return "fair"
	default:
		return "poor"
	}
}

func answerText(answer string) string {
	if answer == "" {
		return "-"
	}
	return answer
}

// resultURL links to the served report of one export.
func resultURL(examID string) templ.SafeURL {
	return templ.URL("/results/" + url.PathEscape(examID))
}
