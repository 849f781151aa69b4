// Package onecomp is a single-band feed-forward compressor processor.
//
// A block runs input trim, a linked peak detector with one-pole
// attack/release smoothing, the static threshold/ratio law and makeup
// gain, in place. Three meters are published per block:
//
//	input          RMS of channel 0 after trim
//	gain reduction input minus the level before makeup, positive dB
//	output         RMS of channel 0 after makeup
//
// Example usage:
//
//	p, _ := onecomp.New()
//	_ = p.Prepare(48000, 256, 2)
//	p.Set(onecomp.ParamThreshold, -20)
//	p.Set(onecomp.ParamRatio, 4)
//	_ = p.Process(block) // block is [][]float32, one slice per channel
//	gr := p.GetGainReduction()
package onecomp
