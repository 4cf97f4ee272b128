// Package renderer evaluates a script's main function across time to
// produce sample frames.
package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chirplang/chirp/pkg/ast"
	"github.com/chirplang/chirp/pkg/diagnostics"
	"github.com/chirplang/chirp/pkg/evaluator"
)

// DefaultSampleRate is the sample rate used when none is configured.
const DefaultSampleRate = 44100

// Config controls a render.
type Config struct {
	// SampleRate in Hz. Zero means DefaultSampleRate.
	SampleRate int
	// Duration in seconds. The frame count is floor(SampleRate*Duration).
	Duration float64
	// Workers is the number of render goroutines. Zero means GOMAXPROCS.
	Workers int
}

func (c Config) sampleRate() int {
	if c.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return c.SampleRate
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// SampleError reports a failure while evaluating one sample.
type SampleError struct {
	Index int
	Time  float64
	Err   error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (t=%g): %v", e.Index, e.Time, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// checkMain verifies the script defines a usable entry point: a function
// named main taking exactly one parameter, the sample time in seconds.
func checkMain(in *evaluator.Interp) (*ast.FuncDef, error) {
	def := in.Func("main")
	if def == nil {
		return nil, &evaluator.RuntimeError{
			Code:    diagnostics.ELoad,
			Message: "script does not define a 'main' function",
		}
	}
	if len(def.Params) != 1 {
		return nil, &evaluator.RuntimeError{
			Code:    diagnostics.ELoad,
			Message: fmt.Sprintf("'main' must take exactly one parameter, has %d", len(def.Params)),
			Span:    def.Span,
		}
	}
	return def, nil
}

// evalSample calls main(t) and requires a numeric result.
func evalSample(in *evaluator.Interp, idx int, t float64) (float64, error) {
	v, err := in.CallFunction("main", []evaluator.Value{evaluator.NewNumber(t)})
	if err != nil {
		return 0, &SampleError{Index: idx, Time: t, Err: err}
	}
	n, ok := v.(evaluator.Number)
	if !ok {
		return 0, &SampleError{Index: idx, Time: t, Err: &evaluator.RuntimeError{
			Code:    diagnostics.EType,
			Message: fmt.Sprintf("'main' must yield a number, got %s", evaluator.TypeName(v)),
		}}
	}
	return n.Value, nil
}

// Render evaluates main once per sample frame and returns the frames in
// index order. Samples are independent, so the work is split into
// contiguous index ranges across worker goroutines. Cancellation is
// honored at sample boundaries.
func Render(ctx context.Context, in *evaluator.Interp, cfg Config) ([]float64, error) {
	if _, err := checkMain(in); err != nil {
		return nil, err
	}
	sr := cfg.sampleRate()
	n := int(float64(sr) * cfg.Duration)
	if n <= 0 {
		return nil, nil
	}
	out := make([]float64, n)

	workers := cfg.workers()
	if workers > n {
		workers = n
	}
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * n / workers
		end := (w + 1) * n / workers
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				t := float64(i) / float64(sr)
				s, err := evalSample(in, i, t)
				if err != nil {
					return err
				}
				out[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
