// Package gain provides amplitude and gain-related DSP operations.
package gain

import "math"

// MinusInfinityDB is the level treated as silence.
const MinusInfinityDB = -100.0

// minusInfinityGain is DbToGain(MinusInfinityDB).
const minusInfinityGain = 1e-5

// DbToGain converts decibels to a linear gain. Levels at or below
// MinusInfinityDB return 0.
func DbToGain(db float64) float64 {
	if db <= MinusInfinityDB {
		return 0
	}
	return math.Pow(10, db*0.05)
}

// GainToDb converts a linear gain to decibels, flooring at MinusInfinityDB.
func GainToDb(gain float64) float64 {
	if gain <= minusInfinityGain {
		return MinusInfinityDB
	}
	return 20 * math.Log10(gain)
}
