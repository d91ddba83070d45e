package reward

import (
	"math"
	"time"
)

const (
	recitationBaseXP = 10
	recitationMinXP  = 5
)

// RecitationXP awards XP for a single scored recitation. Accuracy (0-100)
// picks a multiplier tier, and longer recitations earn more with
// diminishing returns, capped at double. Every attempt is worth at least
// a few points so a poor reading still registers as practice.
func RecitationXP(accuracy float64, duration time.Duration) int {
	var multiplier float64
	switch {
	case accuracy >= 95:
		multiplier = 3.0
	case accuracy >= 90:
		multiplier = 2.5
	case accuracy >= 80:
		multiplier = 2.0
	case accuracy >= 70:
		multiplier = 1.5
	case accuracy >= 50:
		multiplier = 1.0
	default:
		multiplier = 0.5
	}

	durationFactor := math.Min(2.0, 1.0+(duration.Seconds()/60)*0.5)

	xp := int(float64(recitationBaseXP) * multiplier * durationFactor)
	if xp < recitationMinXP {
		xp = recitationMinXP
	}
	return xp
}
