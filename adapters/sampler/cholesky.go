package sampler

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/mat"

	"fbmlab/domain/core"
	"fbmlab/domain/process"
	"fbmlab/ports"
)

// BatchRequest identifies one sampling unit of work so that every draw gets
// its own deterministic RNG stream.
type BatchRequest struct {
	UnitName string
	Count    int
	Seed     int64
}

// CholeskySampler projects i.i.d. standard-normal noise through a Cholesky
// factor to produce correlated sample paths. Draws are independent given the
// shared read-only factor, so they run concurrently under a weighted
// semaphore without changing the values any draw observes.
type CholeskySampler struct {
	rngPort ports.RNGPort
	workers int64
}

// NewCholeskySampler creates a sampler drawing through the given RNG port.
func NewCholeskySampler(rngPort ports.RNGPort) *CholeskySampler {
	return &CholeskySampler{
		rngPort: rngPort,
		workers: int64(runtime.GOMAXPROCS(0)),
	}
}

// SampleBatch draws req.Count independent paths from the factor l. Each path
// is z ~ N(0, I) projected as l*z with the first sample forced to exactly
// zero: covariance at the grid origin is treated as the zero reference.
func (s *CholeskySampler) SampleBatch(ctx context.Context, l *mat.TriDense, req BatchRequest) ([]process.SamplePath, error) {
	if req.Count < 1 {
		return nil, core.ErrInvalidBatchSize
	}
	n, _ := l.Dims()

	paths := make([]process.SamplePath, req.Count)
	sem := semaphore.NewWeighted(s.workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for p := 0; p < req.Count; p++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(draw int) {
			defer sem.Release(1)
			defer wg.Done()

			stream, err := s.rngPort.Stream(ctx, req.UnitName, draw, req.Seed)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			paths[draw] = project(l, n, stream)
		}(p)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return paths, nil
}

func project(l *mat.TriDense, n int, stream *rand.Rand) process.SamplePath {
	z := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		z.SetVec(i, stream.NormFloat64())
	}

	var x mat.VecDense
	x.MulVec(l, z)

	path := make(process.SamplePath, n)
	for i := 0; i < n; i++ {
		path[i] = x.AtVec(i)
	}
	path[0] = 0
	return path
}
