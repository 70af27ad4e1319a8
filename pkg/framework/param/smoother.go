// Package param provides parameter management for VST3 plugins.
package param

import (
	"math"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// LinearSmoothing uses linear interpolation
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing uses exponential smoothing (one-pole filter)
	ExponentialSmoothing
	// LogarithmicSmoothing interpolates linearly in log space. Values must be positive.
	LogarithmicSmoothing
)

// logFloor keeps logarithmic smoothing away from log(0).
const logFloor = 1e-6

// Smoother provides parameter smoothing to prevent zipper noise.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	isSmoothing   bool

	// For linear smoothing
	step float64

	// For logarithmic smoothing
	logCurrent float64
	logTarget  float64
	logStep    float64
}

// NewSmoother creates a new parameter smoother.
// rate: smoothing rate (0.9-0.999 for exponential, samples for linear and logarithmic)
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     1e-7,
	}
}

// SetTime configures the rate so a full transition takes ms milliseconds.
func (s *Smoother) SetTime(sampleRate, ms float64) {
	samples := sampleRate * ms / 1000.0
	switch s.smoothingType {
	case ExponentialSmoothing:
		// -60dB in the given time
		if samples > 0 {
			s.rate = math.Exp(-6.908 / samples)
		} else {
			s.rate = 0
		}
	default:
		s.rate = samples
	}
}

// SetTarget sets the target value for smoothing.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}

	s.target = target
	s.isSmoothing = true

	switch s.smoothingType {
	case LinearSmoothing:
		if s.rate >= 1 {
			s.step = (target - s.current) / s.rate
		} else {
			s.snap()
		}

	case LogarithmicSmoothing:
		s.logCurrent = math.Log(math.Max(s.current, logFloor))
		s.logTarget = math.Log(math.Max(target, logFloor))
		if s.rate >= 1 {
			s.logStep = (s.logTarget - s.logCurrent) / s.rate
		} else {
			s.snap()
		}
	}
}

// Next returns the next smoothed value.
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		// One-pole filter: y = y + a * (x - y)
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.snap()
		}

	case LinearSmoothing:
		s.current += s.step
		if (s.step >= 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.snap()
		}

	case LogarithmicSmoothing:
		s.logCurrent += s.logStep
		if (s.logStep >= 0 && s.logCurrent >= s.logTarget) || (s.logStep < 0 && s.logCurrent <= s.logTarget) {
			s.snap()
		} else {
			s.current = math.Exp(s.logCurrent)
		}
	}

	return s.current
}

func (s *Smoother) snap() {
	s.current = s.target
	s.isSmoothing = false
}

// Current returns the value without advancing.
func (s *Smoother) Current() float64 {
	return s.current
}

// IsSmoothing returns true if the smoother is currently smoothing.
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Reset resets the smoother to a specific value.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}
