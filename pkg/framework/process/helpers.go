package process

// Inputs returns the channels carrying input. The slices alias Buffer and
// keep their full length; Channel and ProcessChannels trim to the block.
func (c *Context) Inputs() [][]float32 {
	return c.Buffer[:c.NumInputChannels()]
}

// ProcessChannels calls fn for every input channel
func (c *Context) ProcessChannels(fn func(ch int, samples []float32)) {
	n := c.NumSamples()
	for ch, buf := range c.Inputs() {
		fn(ch, buf[:n])
	}
}

// Channel returns channel ch trimmed to the block length, or nil.
func (c *Context) Channel(ch int) []float32 {
	if ch < 0 || ch >= len(c.Buffer) {
		return nil
	}
	return c.Buffer[ch][:c.NumSamples()]
}
