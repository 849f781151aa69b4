package param

// Common parameter helpers

// GainParameter creates a continuous dB trim parameter
func GainParameter(id, label string, minDB, maxDB, defaultDB float64) *Builder {
	return New(id, label).
		Range(minDB, maxDB).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}

// ThresholdParameter creates a threshold parameter in whole dB
func ThresholdParameter(id, label string, minDB, maxDB, defaultDB float64) *Builder {
	return GainParameter(id, label, minDB, maxDB, defaultDB).Step(1)
}

// RatioParameter creates a compression ratio parameter
func RatioParameter(id, label string, minRatio, maxRatio, defaultRatio float64) *Builder {
	return New(id, label).
		Range(minRatio, maxRatio).
		Default(defaultRatio).
		Step(0.1).
		Skew(0.7).
		Formatter(RatioFormatter, RatioParser)
}

// TimeParameter creates a skewed time parameter in milliseconds
func TimeParameter(id, label string, minMs, maxMs, step, defaultMs float64) *Builder {
	return New(id, label).
		Range(minMs, maxMs).
		Default(defaultMs).
		Step(step).
		Skew(0.5).
		Unit("ms").
		Formatter(TimeFormatter, TimeParser)
}
