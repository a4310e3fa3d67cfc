package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fbmlab/adapters/cholesky"
	"fbmlab/adapters/quadrature"
	"fbmlab/adapters/rng"
	"fbmlab/app"
	"fbmlab/domain/process"
	"fbmlab/internal"
	"fbmlab/internal/config"
)

func main() {
	// Optional .env for local runs; environment variables win either way.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fbmlab",
		Short: "Generate Brownian, fBm and Riemann-Liouville fBm sample paths and validate their Hurst exponent",
	}

	rootCmd.AddCommand(
		newSweepCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService(cfg *config.Config) *app.SimulationService {
	quadCfg := quadrature.Config{
		Tolerance:  cfg.Numerics.Tolerance,
		MaxPanels:  cfg.Numerics.MaxPanels,
		PanelOrder: cfg.Numerics.PanelOrder,
	}
	factorizer := cholesky.New()
	if cfg.Numerics.Jitter > 0 {
		factorizer = cholesky.NewWithJitter(cfg.Numerics.Jitter)
	}
	return app.NewSimulationService(rng.New(), quadCfg, factorizer)
}

func newSweepCmd() *cobra.Command {
	var families []string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every (family, alpha) unit and report Hurst summaries with per-unit timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := internal.NewDefaultLogger()

			req := app.SweepRequest{
				GridSize:    cfg.Simulation.GridSize,
				GridStart:   cfg.Simulation.GridStart,
				GridEnd:     cfg.Simulation.GridEnd,
				Alphas:      cfg.Simulation.Alphas,
				BatchSize:   cfg.Simulation.BatchSize,
				Seed:        cfg.Simulation.Seed,
				Parallelism: cfg.Simulation.Parallelism,
			}
			for _, name := range families {
				family, err := process.ParseFamily(name)
				if err != nil {
					return err
				}
				req.Families = append(req.Families, family)
			}

			logger.Info("starting sweep: grid=%d batch=%d alphas=%v families=%v",
				req.GridSize, req.BatchSize, req.Alphas, req.Families)

			service := newService(cfg)
			result, err := service.RunSweep(cmd.Context(), req)
			if err != nil {
				return err
			}

			for _, unit := range result.Units {
				if unit.Failed() {
					logger.Warn("unit %s alpha=%g failed: %s", unit.Family, unit.Alpha.Float(), unit.Err)
					continue
				}
				logger.Info("unit %s alpha=%g: offset mean=%.4f stddev=%.4f elapsed=%s",
					unit.Family, unit.Alpha.Float(), unit.Hurst.Mean, unit.Hurst.StdDev, unit.Elapsed)
			}

			return printJSON(result)
		},
	}

	cmd.Flags().StringSliceVar(&families, "families", []string{"brownian", "fbm", "rl-fbm"},
		"process families to simulate (brownian, fbm, rl-fbm)")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var familyName string
	var alpha float64
	var count int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw one batch for a single family and alpha, printing the paths as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			family, err := process.ParseFamily(familyName)
			if err != nil {
				return err
			}

			req := app.SweepRequest{
				GridSize:    cfg.Simulation.GridSize,
				GridStart:   cfg.Simulation.GridStart,
				GridEnd:     cfg.Simulation.GridEnd,
				Families:    []process.Family{family},
				Alphas:      []float64{alpha},
				BatchSize:   count,
				Seed:        cfg.Simulation.Seed,
				Parallelism: 1,
			}

			service := newService(cfg)
			result, err := service.RunSweep(cmd.Context(), req)
			if err != nil {
				return err
			}
			unit := result.Units[0]
			if unit.Failed() {
				return fmt.Errorf("sampling failed: %s", unit.Err)
			}

			return printJSON(process.PathBatch{
				Family: unit.Family,
				Alpha:  unit.Alpha,
				Paths:  unit.Paths,
			})
		},
	}

	cmd.Flags().StringVar(&familyName, "family", "fbm", "process family (brownian, fbm, rl-fbm)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.5, "hurst exponent in (0,1)")
	cmd.Flags().IntVar(&count, "count", 10, "number of paths to draw")
	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
