// Package result presents a graded exam: score tiers, detail filtering and
// the JSON export document.
package result

// Tier is the performance band a score falls into.
type Tier struct {
	Min   float64
	Emoji string
	Label string
}

// Tiers are ordered from best to worst; the first whose Min is reached wins.
var Tiers = []Tier{
	{Min: 90, Emoji: "🏆", Label: "outstanding"},
	{Min: 80, Emoji: "🎉", Label: "excellent"},
	{Min: 70, Emoji: "👏", Label: "good"},
	{Min: 60, Emoji: "👍", Label: "fair"},
	{Min: 0, Emoji: "💪", Label: "keep practicing"},
}

// TierFor returns the tier for a percentage score.
func TierFor(score float64) Tier {
	for _, tier := range Tiers {
		if score >= tier.Min {
			return tier
		}
	}
	return Tiers[len(Tiers)-1]
}

// Score colours.
const (
	ColorGood    = "#28a745"
	ColorFair    = "#fd7e14"
	ColorPoor    = "#dc3545"
	goodMinScore = 80
	fairMinScore = 60
)

// ScoreColor returns the display colour for a percentage score.
func ScoreColor(score float64) string {
	switch {
	case score >= goodMinScore:
		return ColorGood
	case score >= fairMinScore:
		return ColorFair
	default:
		return ColorPoor
	}
}
