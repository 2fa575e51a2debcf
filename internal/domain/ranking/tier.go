package ranking

// Tier is a percentile bucket used for color coding.
type Tier struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Tiers from best to worst.
var (
	TierElite   = Tier{Name: "elite", Color: "#1A9850"}
	TierGood    = Tier{Name: "good", Color: "#91CF60"}
	TierAverage = Tier{Name: "average", Color: "#FEE08B"}
	TierBelow   = Tier{Name: "below", Color: "#FC8D59"}
	TierPoor    = Tier{Name: "poor", Color: "#D73027"}
)

// Percentile converts a 1-based rank among total entries to a percentile in
// (0, 1), where the best rank is closest to 1.
func Percentile(rank, total int) float64 {
	if total <= 0 || rank < 1 || rank > total {
		return 0
	}
	return (float64(total-rank) + 0.5) / float64(total)
}

// TierFor buckets a percentile.
func TierFor(pct float64) Tier {
	switch {
	case pct >= 0.9:
		return TierElite
	case pct >= 0.7:
		return TierGood
	case pct >= 0.3:
		return TierAverage
	case pct >= 0.1:
		return TierBelow
	default:
		return TierPoor
	}
}
