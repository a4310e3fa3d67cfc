package sampler

import (
	"context"

	"fbmlab/domain/core"
	"fbmlab/domain/process"
	"fbmlab/ports"
)

// BrownianSampler builds standard Brownian motion paths by prefix-summing
// independent standard-normal increments:
//
//	W[0] = 0; W[i] = W[i-1] + Z_i
//
// This is a separate code path from the Cholesky route on purpose: it needs
// no covariance assembly or factorization, so it carries none of the O(N^2)
// setup cost.
type BrownianSampler struct {
	rngPort ports.RNGPort
}

// NewBrownianSampler creates a Brownian motion sampler.
func NewBrownianSampler(rngPort ports.RNGPort) *BrownianSampler {
	return &BrownianSampler{rngPort: rngPort}
}

// SampleBatch draws req.Count independent Brownian paths of n samples each.
func (s *BrownianSampler) SampleBatch(ctx context.Context, n int, req BatchRequest) ([]process.SamplePath, error) {
	if req.Count < 1 {
		return nil, core.ErrInvalidBatchSize
	}
	if n < 2 {
		return nil, core.NewGridParameterError("path length < 2")
	}

	paths := make([]process.SamplePath, req.Count)
	for p := 0; p < req.Count; p++ {
		stream, err := s.rngPort.Stream(ctx, req.UnitName, p, req.Seed)
		if err != nil {
			return nil, err
		}

		path := make(process.SamplePath, n)
		for i := 1; i < n; i++ {
			path[i] = path[i-1] + stream.NormFloat64()
		}
		paths[p] = path
	}
	return paths, nil
}
