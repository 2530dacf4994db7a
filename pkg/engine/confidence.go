package engine

// ConfidenceLevel is the categorical label attached to a matching score.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// Classify maps a matching score to its confidence band. Band edges are
// inclusive upward: 85 is high, 70 is medium, 50 is low.
func Classify(score float64) ConfidenceLevel {
	switch {
	case score >= 85:
		return ConfidenceHigh
	case score >= 70:
		return ConfidenceMedium
	case score >= 50:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
