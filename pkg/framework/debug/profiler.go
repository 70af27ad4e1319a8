package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Profiler collects timing statistics per named section.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name    string
	Count   uint64
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
	Last    time.Duration
	samples []time.Duration
	next    int
}

// NewProfiler creates a profiler keeping the last maxSamples timings per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
}

// Start begins timing a named section. Call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record stores one timing.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.next] = elapsed
		m.next = (m.next + 1) % p.maxSamples
	}
}

// Get returns a copy of the measurement for a section.
func (p *Profiler) Get(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	out := *m
	out.samples = append([]time.Duration(nil), m.samples...)
	return out, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report formats all sections sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Get(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p99=%v\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
	}
	return sb.String()
}

// Average returns the mean time.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile of the retained samples.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), m.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p / 100.0)
	return sorted[max(0, min(idx, len(sorted)-1))]
}

// CPULoad returns the average section time as a percentage of the real time
// one block of blockSize samples represents.
func (m Measurement) CPULoad(sampleRate float64, blockSize int) float64 {
	if sampleRate <= 0 || blockSize <= 0 {
		return 0
	}
	budget := time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
	return float64(m.Average()) / float64(budget) * 100
}
