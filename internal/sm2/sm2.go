// Package sm2 implements the SuperMemo-2 spaced repetition algorithm used
// to schedule vocabulary reviews.
package sm2

// Quality rates recall of an item on the standard SM-2 0-5 scale.
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Incorrect, but remembered upon seeing the answer
	QualityIncorrectHard Quality = 1
	// Incorrect, but the answer felt easy once seen
	QualityIncorrectEasy Quality = 2
	// Correct with serious difficulty
	QualityCorrectHard Quality = 3
	// Correct after hesitation
	QualityCorrectHesitant Quality = 4
	// Perfect response with no hesitation
	QualityCorrectPerfect Quality = 5
)

// PassThreshold is the lowest quality counted as a successful recall.
const PassThreshold = QualityCorrectHard

// MinEaseFactor is the floor the ease factor never drops below.
const MinEaseFactor = 1.3

// DefaultEaseFactor is the ease assigned to newly tracked items.
const DefaultEaseFactor = 2.5

// Valid reports whether q is on the 0-5 scale.
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityCorrectPerfect
}

// Next computes the SM-2 state transition for a single review.
//
// Ease is adjusted by the canonical quadratic penalty and clamped at
// MinEaseFactor. A failed recall (quality < 3) resets repetitions to zero
// and the interval to one day regardless of prior state. Successful recalls
// follow the SM-2 bootstrap: first success 1 day, second 6 days, then the
// previous interval scaled by the new ease, truncated toward zero. Neither
// ease nor interval is capped.
func Next(ease float64, intervalDays, repetitions int, quality Quality) (newEase float64, newInterval, newReps int) {
	q := float64(quality)
	newEase = ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}

	if quality < PassThreshold {
		return newEase, 1, 0
	}

	newReps = repetitions + 1
	switch newReps {
	case 1:
		newInterval = 1
	case 2:
		newInterval = 6
	default:
		newInterval = int(float64(intervalDays) * newEase)
	}
	return newEase, newInterval, newReps
}
