package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"fbmlab/adapters/cholesky"
	"fbmlab/adapters/covariance"
	"fbmlab/adapters/estimator"
	"fbmlab/adapters/quadrature"
	"fbmlab/adapters/sampler"
	"fbmlab/domain/core"
	"fbmlab/domain/grid"
	"fbmlab/domain/process"
	"fbmlab/ports"
)

// SimulationService runs the full generation-and-validation pipeline:
// grid -> covariance -> factorization -> sampling -> hurst estimation.
// Each (family, alpha) pair is an independent unit of work; unit failures
// are scoped to the unit and never abort the rest of the sweep.
type SimulationService struct {
	rngPort    ports.RNGPort
	fbmBuilder *covariance.FBMBuilder
	rlBuilder  *covariance.RLBuilder
	factorizer *cholesky.Factorizer
	cholSample *sampler.CholeskySampler
	bmSample   *sampler.BrownianSampler
	estimator  *estimator.HurstEstimator
}

// SweepRequest defines the inputs for one deterministic sweep.
type SweepRequest struct {
	GridSize    int              `json:"grid_size"`
	GridStart   float64          `json:"grid_start"`
	GridEnd     float64          `json:"grid_end"`
	Families    []process.Family `json:"families"`
	Alphas      []float64        `json:"alphas"`
	BatchSize   int              `json:"batch_size"`
	Seed        int64            `json:"seed"`
	Parallelism int              `json:"parallelism"`
	// KeepCovariance retains each unit's covariance matrix for diagnostics.
	// Off by default: the matrix is otherwise ephemeral and discardable once
	// factored.
	KeepCovariance bool `json:"keep_covariance"`
}

// UnitResult is the complete output of one (family, alpha) unit of work.
type UnitResult struct {
	UnitID     core.UnitID          `json:"unit_id"`
	Family     process.Family       `json:"family"`
	Alpha      process.Hurst        `json:"alpha"`
	Paths      []process.SamplePath `json:"-"`
	Covariance *mat.SymDense        `json:"-"`
	Quadrature *covariance.Report   `json:"quadrature,omitempty"`
	Hurst      process.HurstSummary `json:"hurst"`
	Elapsed    time.Duration        `json:"elapsed_ns"`
	Err        string               `json:"error,omitempty"`
}

// Failed reports whether the unit was aborted by a scoped error.
func (u UnitResult) Failed() bool { return u.Err != "" }

// SweepResult contains every unit's outcome plus sweep-level identity and
// timing.
type SweepResult struct {
	SweepID core.SweepID  `json:"sweep_id"`
	Units   []UnitResult  `json:"units"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// NewSimulationService wires the pipeline components.
func NewSimulationService(rngPort ports.RNGPort, quadCfg quadrature.Config, factorizer *cholesky.Factorizer) *SimulationService {
	return &SimulationService{
		rngPort:    rngPort,
		fbmBuilder: covariance.NewFBMBuilder(),
		rlBuilder:  covariance.NewRLBuilder(quadCfg),
		factorizer: factorizer,
		cholSample: sampler.NewCholeskySampler(rngPort),
		bmSample:   sampler.NewBrownianSampler(rngPort),
		estimator:  estimator.New(),
	}
}

// RunSweep executes every (family, alpha) unit. Request validation errors
// are fatal to the call; numerical failures inside a unit are recorded on
// that unit only. Units are independent, so they run as a parallel map with
// a configurable limit; per-draw derived RNG streams keep the output
// identical to a sequential run.
func (s *SimulationService) RunSweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	startTime := time.Now()

	g, err := grid.New(req.GridSize, req.GridStart, req.GridEnd)
	if err != nil {
		return nil, err
	}
	if req.BatchSize < 1 {
		return nil, core.ErrInvalidBatchSize
	}
	if len(req.Families) == 0 || len(req.Alphas) == 0 {
		return nil, fmt.Errorf("sweep requires at least one family and one alpha")
	}
	alphas := make([]process.Hurst, len(req.Alphas))
	for i, a := range req.Alphas {
		h, err := process.NewHurst(a)
		if err != nil {
			return nil, err
		}
		alphas[i] = h
	}

	sweepID := core.SweepID(core.NewID())
	result := &SweepResult{
		SweepID: sweepID,
		Units:   make([]UnitResult, len(req.Families)*len(alphas)),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if req.Parallelism > 0 {
		eg.SetLimit(req.Parallelism)
	}

	for fi, family := range req.Families {
		for ai, alpha := range alphas {
			family, alpha := family, alpha
			idx := fi*len(alphas) + ai
			eg.Go(func() error {
				result.Units[idx] = s.runUnit(egCtx, g, family, alpha, req)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(startTime)
	return result, nil
}

// runUnit executes one (family, alpha) unit to completion. It is a pure
// function of (grid, alpha, batch size, seed): no state is shared with any
// other unit.
func (s *SimulationService) runUnit(ctx context.Context, g grid.TimeGrid, family process.Family, alpha process.Hurst, req SweepRequest) UnitResult {
	startTime := time.Now()
	unit := UnitResult{
		UnitID: core.UnitID(core.NewID()),
		Family: family,
		Alpha:  alpha,
	}
	unitName := fmt.Sprintf("%s/%g", family, alpha.Float())
	batchReq := sampler.BatchRequest{
		UnitName: unitName,
		Count:    req.BatchSize,
		Seed:     req.Seed,
	}

	paths, cov, quadReport, err := s.generate(ctx, g, family, alpha, batchReq)
	unit.Quadrature = quadReport
	if err != nil {
		unit.Err = err.Error()
		unit.Elapsed = time.Since(startTime)
		return unit
	}

	unit.Paths = paths
	if req.KeepCovariance {
		unit.Covariance = cov
	}
	unit.Hurst = s.estimator.Summarize(paths, alpha)
	unit.Elapsed = time.Since(startTime)
	return unit
}

func (s *SimulationService) generate(ctx context.Context, g grid.TimeGrid, family process.Family, alpha process.Hurst, batchReq sampler.BatchRequest) ([]process.SamplePath, *mat.SymDense, *covariance.Report, error) {
	switch family {
	case process.FamilyBrownian:
		paths, err := s.bmSample.SampleBatch(ctx, g.Len(), batchReq)
		return paths, nil, nil, err

	case process.FamilyFBM:
		cov := s.fbmBuilder.Build(g, alpha)
		paths, err := s.factorAndSample(ctx, cov, batchReq)
		return paths, cov, nil, err

	case process.FamilyRiemannLiouville:
		cov, report, err := s.rlBuilder.Build(ctx, g, alpha)
		if err != nil && !report.LowConfidence {
			// Hard failure (e.g. context cancellation), not a tolerance miss.
			return nil, nil, report, err
		}
		// Low-confidence entries keep their partial values; the report
		// carries the convergence status downstream.
		paths, err := s.factorAndSample(ctx, cov, batchReq)
		return paths, cov, report, err

	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", core.ErrUnknownFamily, family)
	}
}

func (s *SimulationService) factorAndSample(ctx context.Context, cov *mat.SymDense, batchReq sampler.BatchRequest) ([]process.SamplePath, error) {
	l, err := s.factorizer.Factorize(cov)
	if err != nil {
		return nil, err
	}
	return s.cholSample.SampleBatch(ctx, l, batchReq)
}
