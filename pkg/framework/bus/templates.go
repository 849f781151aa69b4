package bus

// NewEffectStereo creates a standard stereo effect configuration (1 stereo in, 1 stereo out)
func NewEffectStereo() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewEffectMono creates a mono effect configuration (1 mono in, 1 mono out)
func NewEffectMono() *Configuration {
	return NewBuilder().
		WithMonoInput("Mono In").
		WithMonoOutput("Mono Out").
		MustBuild()
}

// ForLayout returns the effect configuration for a supported layout.
func ForLayout(l Layout) (*Configuration, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l == Mono {
		return NewEffectMono(), nil
	}
	return NewEffectStereo(), nil
}
