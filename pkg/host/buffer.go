package host

// Buffer is planar rendered audio
type Buffer struct {
	SampleRate float64
	Channels   [][]float32
}

// NewBuffer allocates a silent buffer
func NewBuffer(channels, frames int, sampleRate float64) *Buffer {
	b := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float32, frames)
	}
	return b
}

// NumChannels returns the channel count
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the length of each channel in samples
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the length in seconds
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / b.SampleRate
}

