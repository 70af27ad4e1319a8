package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// ErrUnknownParameter is returned when a lookup by ID or key finds nothing.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Key          string // Stable string identifier used by presets
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // Normalized
	Skew         float64 // 1 is linear, <1 spends more of the range on low values
	StepSize     float64 // Plain-value step, 0 for continuous
	StepCount    int32
	Flags        uint32
	UnitID       int32

	// Atomic value for lock-free access in audio thread
	value uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate     uint32 = 1 << 0
	IsReadOnly      uint32 = 1 << 1
	IsWrapAround    uint32 = 1 << 2
	IsList          uint32 = 1 << 3
	IsHidden        uint32 = 1 << 4
	IsProgramChange uint32 = 1 << 15
	IsBypass        uint32 = 1 << 16
)

// SkewFactor maps an exponent to a skew value: 2^x.
// SkewFactor(-1) gives 0.5, which is what frequency and time ranges use.
func SkewFactor(x float64) float64 {
	return math.Pow(2, x)
}

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(atomic.LoadUint64(&p.value))
}

// SetValue sets the normalized value (0-1)
func (p *Parameter) SetValue(value float64) {
	if math.IsNaN(value) || value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	atomic.StoreUint64(&p.value, math.Float64bits(value))
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	if p.StepCount > 0 || p.StepSize >= 1 {
		return withUnit(fmt.Sprintf("%.0f", plain), p.Unit)
	}
	return withUnit(fmt.Sprintf("%.2f", plain), p.Unit)
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Normalize(plain), nil
	}
	plain, err := strconv.ParseFloat(trimUnit(str, p.Unit), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", p.Key, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	plain = p.snap(plain)
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized <= 0 {
		return 0
	}
	if normalized >= 1 {
		return 1
	}
	if p.Skew > 0 && p.Skew != 1 {
		normalized = math.Pow(normalized, p.Skew)
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	if normalized <= 0 {
		return p.Min
	}
	if normalized >= 1 {
		return p.Max
	}
	if p.Skew > 0 && p.Skew != 1 {
		normalized = math.Pow(normalized, 1/p.Skew)
	}
	return p.snap(p.Min + normalized*(p.Max-p.Min))
}

// snap rounds a plain value to the step grid and clamps it to the range
func (p *Parameter) snap(plain float64) float64 {
	if p.StepSize > 0 {
		plain = p.Min + math.Round((plain-p.Min)/p.StepSize)*p.StepSize
	}
	if plain < p.Min {
		return p.Min
	}
	if plain > p.Max {
		return p.Max
	}
	return plain
}
