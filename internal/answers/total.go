package answers

import (
	"strconv"

	"examctl/internal/exam"
)

// DefaultTotal is the question count assumed when nothing better is known.
const DefaultTotal = 50

// Resolution explains where a question count came from.
type Resolution string

const (
	// FromServer means the server sent an explicit count.
	FromServer Resolution = "server"
	// FromPreview means the count was inferred from the highest preview key.
	FromPreview Resolution = "preview"
	// FromFallback means the configured default was used.
	FromFallback Resolution = "fallback"
)

// ResolveTotal picks the question count for the answer grid. An explicit
// server count wins; otherwise the highest numeric preview key is used;
// otherwise fallback (DefaultTotal when fallback <= 0).
func ResolveTotal(preview *exam.Preview, fallback int) (int, Resolution) {
	if fallback <= 0 {
		fallback = DefaultTotal
	}
	if preview == nil {
		return fallback, FromFallback
	}
	if preview.TotalQuestions > 0 {
		return preview.TotalQuestions, FromServer
	}
	highest := 0
	for key := range preview.Preview {
		n, err := strconv.Atoi(key)
		if err != nil || n <= 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if highest == 0 {
		return fallback, FromFallback
	}
	return highest, FromPreview
}
