// Package analysis inspects rendered audio buffers.
package analysis

import (
	"fmt"
	"math"
)

// Analyzer holds the thresholds used to flag problems.
type Analyzer struct {
	ClippingThreshold float32
	DCThreshold       float32
	SilenceThreshold  float32
}

// NewAnalyzer creates an analyzer with default thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		ClippingThreshold: 0.99,
		DCThreshold:       0.01,
		SilenceThreshold:  0.0001,
	}
}

// Result contains the results of audio buffer analysis.
type Result struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	ZeroCrossings  int
	Silent         bool
}

// PeakDB returns the peak in decibels.
func (r Result) PeakDB() float64 {
	if r.Peak <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(r.Peak))
}

// Analyze measures a buffer. NaN and Inf samples are counted and skipped.
func (a *Analyzer) Analyze(buffer []float32) Result {
	result := Result{Samples: len(buffer)}
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	var last float32
	valid := 0

	for _, sample := range buffer {
		s := float64(sample)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			result.NaNCount++
			continue
		}

		abs := float32(math.Abs(s))
		result.Peak = max(result.Peak, abs)
		if abs >= a.ClippingThreshold {
			result.ClippedSamples++
		}

		sum += s
		sumSquares += s * s
		if valid > 0 && (last < 0) != (sample < 0) {
			result.ZeroCrossings++
		}
		last = sample
		valid++
	}

	if valid > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(valid)))
		result.DC = float32(sum / float64(valid))
	}
	result.Silent = result.RMS < a.SilenceThreshold
	return result
}

// Issues lists the problems found in a result.
func (a *Analyzer) Issues(r Result) []string {
	var issues []string
	if r.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%d non-finite samples", r.NaNCount))
	}
	if r.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("clipping in %d samples", r.ClippedSamples))
	}
	if math.Abs(float64(r.DC)) > float64(a.DCThreshold) {
		issues = append(issues, fmt.Sprintf("DC offset %.3f", r.DC))
	}
	if r.Peak > 1 {
		issues = append(issues, fmt.Sprintf("peak %.3f exceeds full scale", r.Peak))
	}
	return issues
}
