package stdlib

import (
	"math"

	"github.com/chirplang/chirp/pkg/evaluator"
)

// The fast oscillators are phase-based waveform primitives. Each takes a
// frequency in Hz, a peak amplitude, and a time in seconds, and derives
// the waveform from the fractional phase freq*time mod 1.
func registerOscillators(reg map[string]*evaluator.BuiltinFn) {
	oscParams := params("freq", "amp", "time")
	register(reg, "fastsin", oscParams, func(a []float64) float64 {
		return math.Sin(phase(a)*tau) * a[1]
	})
	register(reg, "fastsaw", oscParams, func(a []float64) float64 {
		return phase(a) * a[1]
	})
	register(reg, "fastsqr", oscParams, func(a []float64) float64 {
		if phase(a) < 0.5 {
			return a[1]
		}
		return -a[1]
	})
	register(reg, "fasttri", oscParams, func(a []float64) float64 {
		return (4*math.Abs(phase(a)-0.5) - 1) * a[1]
	})
}

func phase(a []float64) float64 {
	return math.Mod(a[0]*a[2], 1)
}
