package renderer

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/chirplang/chirp/pkg/evaluator"
)

// DefaultChunkSize is the number of frames delivered per callback.
const DefaultChunkSize = 1024

// StreamConfig controls a streaming render.
type StreamConfig struct {
	Config
	// ChunkSize is the number of frames per callback. Zero means
	// DefaultChunkSize.
	ChunkSize int
	// Realtime paces chunk delivery to the sample rate, so a consumer
	// reading as fast as it can still receives audio at wall-clock speed.
	Realtime bool
}

func (c StreamConfig) chunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

// Stream renders sequentially in chunk-sized batches and hands each chunk
// to fn. A Duration of zero streams until the context is canceled or fn
// returns an error. The chunk slice is reused between calls.
func Stream(ctx context.Context, in *evaluator.Interp, cfg StreamConfig, fn func(chunk []float64) error) error {
	if _, err := checkMain(in); err != nil {
		return err
	}
	sr := cfg.sampleRate()
	size := cfg.chunkSize()

	total := -1
	if cfg.Duration > 0 {
		total = int(float64(sr) * cfg.Duration)
	}

	var limiter *rate.Limiter
	if cfg.Realtime {
		limiter = rate.NewLimiter(rate.Limit(float64(sr)), size)
	}

	chunk := make([]float64, size)
	idx := 0
	for total < 0 || idx < total {
		n := size
		if total >= 0 && total-idx < n {
			n = total - idx
		}
		for j := 0; j < n; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := float64(idx) / float64(sr)
			s, err := evalSample(in, idx, t)
			if err != nil {
				return err
			}
			chunk[j] = s
			idx++
		}
		if limiter != nil {
			if err := limiter.WaitN(ctx, n); err != nil {
				return err
			}
		}
		if err := fn(chunk[:n]); err != nil {
			return err
		}
	}
	return nil
}
