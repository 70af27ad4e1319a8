package param

// Convenience builders for the parameter shapes percussion instruments use.
// Ranges are plain values; time is in seconds.

// GainParameter creates a decibel parameter with a 0.01 dB step
func GainParameter(id uint32, key, name string, minDB, maxDB, defaultDB float64) *Builder {
	return New(id, name).
		Key(key).
		Range(minDB, maxDB).
		Step(0.01).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}

// SecondsParameter creates a skewed time parameter
func SecondsParameter(id uint32, key, name string, min, max, defaultSec float64) *Builder {
	return New(id, name).
		Key(key).
		Range(min, max).
		Skew(SkewFactor(-1)).
		Default(defaultSec).
		Unit("s").
		Formatter(SecondsFormatter, SecondsParser)
}

// FrequencyParameter creates a skewed frequency parameter
func FrequencyParameter(id uint32, key, name string, minHz, maxHz, defaultHz float64) *Builder {
	return New(id, name).
		Key(key).
		Range(minHz, maxHz).
		Skew(SkewFactor(-1)).
		Default(defaultHz).
		Unit("Hz").
		Formatter(FrequencyFormatter, FrequencyParser)
}

// EQGainParameter creates a linear decibel parameter for filter gain
func EQGainParameter(id uint32, key, name string, minDB, maxDB, defaultDB float64) *Builder {
	return New(id, name).
		Key(key).
		Range(minDB, maxDB).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}

// QParameter creates a skewed filter width parameter
func QParameter(id uint32, key, name string, minQ, maxQ, defaultQ float64) *Builder {
	return New(id, name).
		Key(key).
		Range(minQ, maxQ).
		Skew(SkewFactor(-1)).
		Default(defaultQ).
		Formatter(PlainFormatter, nil)
}

// LevelParameter creates a linear 0-1 level parameter
func LevelParameter(id uint32, key, name string, defaultLevel float64) *Builder {
	return LinearParameter(id, key, name, 0, 1, defaultLevel)
}

// LinearParameter creates an unskewed unitless parameter
func LinearParameter(id uint32, key, name string, min, max, dflt float64) *Builder {
	return New(id, name).
		Key(key).
		Range(min, max).
		Default(dflt).
		Formatter(PlainFormatter, nil)
}
