// Package mastery adjusts per-concept mastery scores from practice outcomes.
package mastery

// Threshold is the mastery score at or above which a concept counts as
// mastered. The skill service and the repository's mastered-concepts query
// must both use this constant so the prerequisite gate and the
// recommendation filter cannot drift apart.
const Threshold = 0.8

// MinDifficulty and MaxDifficulty bound the learner-reported difficulty of
// a practice attempt.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ValidDifficulty reports whether d is on the 1-5 scale.
func ValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// Advance computes the next mastery score and attempt count for one practice
// attempt. A success at difficulty 3 gains exactly 0.1; harder attempts gain
// proportionally more. A failure loses a flat 0.05 regardless of difficulty.
// The score is clamped to [0, 1]. A concept never practiced before starts
// from score 0 and attempts 0.
func Advance(score float64, attempts int, success bool, difficulty int) (newScore float64, newAttempts int) {
	newAttempts = attempts + 1
	if success {
		newScore = score + 0.1*(float64(difficulty)/3.0)
		if newScore > 1.0 {
			newScore = 1.0
		}
	} else {
		newScore = score - 0.05
		if newScore < 0.0 {
			newScore = 0.0
		}
	}
	return newScore, newAttempts
}
