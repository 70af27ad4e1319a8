package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	lower := strings.ToLower(str)

	if strings.HasSuffix(lower, "khz") {
		val, err := strconv.ParseFloat(strings.TrimSpace(str[:len(str)-3]), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	if strings.HasSuffix(lower, "hz") {
		str = str[:len(str)-2]
	}
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(str, "inf") {
		return -96.0, nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// SecondsFormatter formats a time given in seconds, switching to ms below 1 s
func SecondsFormatter(s float64) string {
	switch {
	case s < 0.001:
		return fmt.Sprintf("%.0f µs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.1f ms", s*1000)
	default:
		return fmt.Sprintf("%.2f s", s)
	}
}

// SecondsParser parses time strings into seconds
func SecondsParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	scale := 1.0
	switch {
	case strings.HasSuffix(str, "µs"):
		str, scale = strings.TrimSuffix(str, "µs"), 1e-6
	case strings.HasSuffix(str, "us"):
		str, scale = strings.TrimSuffix(str, "us"), 1e-6
	case strings.HasSuffix(str, "ms"):
		str, scale = strings.TrimSuffix(str, "ms"), 1e-3
	case strings.HasSuffix(str, "s"):
		str = strings.TrimSuffix(str, "s")
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return val * scale, nil
}

// SamplesFormatter formats a whole number of samples
func SamplesFormatter(n float64) string {
	return fmt.Sprintf("%.0f samples", n)
}

// SamplesParser parses a sample count
func SamplesParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "samples")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// PlainFormatter shows two decimals with no unit
func PlainFormatter(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func trimUnit(s, unit string) string {
	s = strings.TrimSpace(s)
	if unit != "" {
		s = strings.TrimSuffix(s, unit)
	}
	return strings.TrimSpace(s)
}
