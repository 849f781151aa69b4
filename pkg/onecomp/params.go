package onecomp

import (
	"fmt"

	"github.com/justyntemme/onecomp/pkg/framework/param"
)

// Parameter IDs
const (
	ParamThreshold = "threshold"
	ParamRatio     = "ratio"
	ParamAttack    = "attack"
	ParamRelease   = "release"
	ParamGain      = "gain"
	ParamInput     = "input"
)

// ParameterIDs lists the parameters in registration order.
var ParameterIDs = []string{ParamThreshold, ParamRatio, ParamAttack, ParamRelease, ParamGain, ParamInput}

func newParameters() []*param.Parameter {
	return []*param.Parameter{
		param.ThresholdParameter(ParamThreshold, "Threshold", -60, 0, -10).Build(),
		param.RatioParameter(ParamRatio, "Ratio", 1, 25, 21.5).Build(),
		param.TimeParameter(ParamAttack, "Attack", 0.1, 150, 0.05, 2).Build(),
		param.TimeParameter(ParamRelease, "Release", 1.5, 2000, 0.1, 120).Build(),
		param.GainParameter(ParamGain, "Gain", -30, 30, 0).Build(),
		param.GainParameter(ParamInput, "Input", -30, 30, 0).Build(),
	}
}

// parameters caches the registered parameters so the audio thread never
// does a map lookup.
type parameters struct {
	threshold *param.Parameter
	ratio     *param.Parameter
	attack    *param.Parameter
	release   *param.Parameter
	gain      *param.Parameter
	input     *param.Parameter
}

func lookupParameters(r *param.Registry) (parameters, error) {
	var p parameters
	for _, slot := range []struct {
		id  string
		dst **param.Parameter
	}{
		{ParamThreshold, &p.threshold},
		{ParamRatio, &p.ratio},
		{ParamAttack, &p.attack},
		{ParamRelease, &p.release},
		{ParamGain, &p.gain},
		{ParamInput, &p.input},
	} {
		prm, err := r.Lookup(slot.id)
		if err != nil {
			return parameters{}, fmt.Errorf("onecomp: %w", err)
		}
		*slot.dst = prm
	}
	return p, nil
}

// settings is one block's view of the parameters.
type settings struct {
	inputDB     float64
	thresholdDB float64
	ratio       float64
	attackMs    float64
	releaseMs   float64
	gainDB      float64
}

// load takes the per-block snapshot. Each read is a single atomic load.
func (p *parameters) load() settings {
	return settings{
		inputDB:     p.input.Value(),
		thresholdDB: p.threshold.Value(),
		ratio:       p.ratio.Value(),
		attackMs:    p.attack.Value(),
		releaseMs:   p.release.Value(),
		gainDB:      p.gain.Value(),
	}
}
