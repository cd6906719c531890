package result

import (
	"fmt"
	"time"
)

// FormatTimeTaken renders a duration as "1h 2m 3s", "2m 3s" or "3s".
// Sub-second remainders are dropped.
func FormatTimeTaken(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatScore renders a percentage with one decimal.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}

// Share returns part/total as a fraction in [0, 1].
func Share(part, total int) float64 {
	if total <= 0 || part <= 0 {
		return 0
	}
	if part >= total {
		return 1
	}
	return float64(part) / float64(total)
}
