package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"powersim/domain/core"
	"powersim/domain/design"
	"powersim/domain/effects"
	"powersim/domain/outcome"
	"powersim/domain/power"
	"powersim/internal"
	"powersim/internal/errors"
	"powersim/ports"
)

// FailurePolicy controls how the driver reacts when one repetition fails.
type FailurePolicy int

const (
	// PolicyFailFast aborts the whole batch on the first failed repetition.
	// This is the default: silently dropping repetitions would bias the
	// power estimate.
	PolicyFailFast FailurePolicy = iota
	// PolicySkip records the failed seed in the manifest and continues.
	PolicySkip
)

// PowerRequest carries everything one simulation batch needs.
type PowerRequest struct {
	Design      design.Spec
	Effects     effects.Spec
	Simulations int
	Alpha       float64
	Workers     int // 1 = sequential
	Policy      FailurePolicy
}

// PowerResult is the complete output of a batch: the raw per-repetition
// coefficient rows, the aggregated power table, and the run manifest.
type PowerResult struct {
	Rows      []power.CoefficientRow
	Summaries []power.Summary
	Manifest  *power.RunManifest
}

// PowerService drives the generate -> simulate -> fit loop over independent
// seeds and aggregates the collected rows into power estimates.
type PowerService struct {
	fitter ports.ModelFitterPort
	rng    ports.RNGPort
	logger *internal.Logger
}

// NewPowerService creates the simulation driver
func NewPowerService(fitter ports.ModelFitterPort, rng ports.RNGPort, logger *internal.Logger) *PowerService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PowerService{fitter: fitter, rng: rng, logger: logger}
}

// Run executes the batch for seeds 1..Simulations.
//
// All validation happens up front, before any random draw: a misconfigured
// study fails with zero wasted computation. The design skeleton is built
// once and shared read-only across repetitions; each repetition owns its
// seeded generator, so results are identical whether repetitions run
// sequentially or on the worker pool.
func (s *PowerService) Run(ctx context.Context, req PowerRequest) (*PowerResult, error) {
	if err := req.Design.Validate(); err != nil {
		return nil, err
	}
	if err := req.Effects.Validate(); err != nil {
		return nil, err
	}
	if req.Simulations <= 0 {
		return nil, errors.ConfigInvalid("simulations must be a positive integer")
	}
	alpha := req.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = power.DefaultAlpha
	}

	units, err := design.Generate(req.Design)
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting power simulation: %d seeds, %d units per repetition, alpha=%g",
		req.Simulations, len(units), alpha)
	start := time.Now()

	perSeed := make([][]power.CoefficientRow, req.Simulations)
	var skipped []int64

	if req.Workers <= 1 {
		skipped, err = s.runSequential(ctx, req, units, perSeed)
	} else {
		skipped, err = s.runParallel(ctx, req, units, perSeed)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]power.CoefficientRow, 0, 2*req.Simulations)
	for _, repRows := range perSeed {
		rows = append(rows, repRows...)
	}

	manifest := power.NewRunManifest(req.Simulations, len(units), alpha)
	manifest.RowCount = len(rows)
	manifest.SkippedSeeds = skipped
	manifest.RuntimeMs = time.Since(start).Milliseconds()

	s.logger.Info("power simulation %s finished: %d rows in %dms",
		manifest.RunID, manifest.RowCount, manifest.RuntimeMs)

	return &PowerResult{
		Rows:      rows,
		Summaries: power.Aggregate(rows, alpha),
		Manifest:  manifest,
	}, nil
}

func (s *PowerService) runSequential(ctx context.Context, req PowerRequest, units []design.UnitRecord, perSeed [][]power.CoefficientRow) ([]int64, error) {
	var skipped []int64
	for seed := int64(1); seed <= int64(req.Simulations); seed++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repRows, err := s.runRepetition(ctx, seed, units, req.Effects)
		if err != nil {
			if req.Policy == PolicySkip {
				s.logger.Warn("skipping failed repetition: %v", err)
				skipped = append(skipped, seed)
				continue
			}
			return nil, err
		}
		perSeed[seed-1] = repRows
	}
	return skipped, nil
}

// runParallel executes repetitions on a bounded worker pool. Rows land in
// per-seed slots, so flattened output keeps exact seed order and matches
// sequential execution row for row.
func (s *PowerService) runParallel(ctx context.Context, req PowerRequest, units []design.UnitRecord, perSeed [][]power.CoefficientRow) ([]int64, error) {
	sem := semaphore.NewWeighted(int64(req.Workers))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		skipped  []int64
		firstErr error
	)

	for seed := int64(1); seed <= int64(req.Simulations); seed++ {
		if err := sem.Acquire(runCtx, 1); err != nil {
			break // cancelled by a failed repetition
		}
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			defer sem.Release(1)

			repRows, err := s.runRepetition(runCtx, seed, units, req.Effects)
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				if req.Policy == PolicySkip {
					s.logger.Warn("skipping failed repetition: %v", err)
					skipped = append(skipped, seed)
					return
				}
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			perSeed[seed-1] = repRows
		}(seed)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// skip order should not depend on goroutine scheduling
	sort.Slice(skipped, func(i, j int) bool { return skipped[i] < skipped[j] })
	return skipped, nil
}

// runRepetition performs one independent generate-or-reuse -> simulate -> fit
// cycle. Any failure comes back wrapped with the seed so the repetition can
// be reproduced in isolation.
func (s *PowerService) runRepetition(ctx context.Context, seed int64, units []design.UnitRecord, spec effects.Spec) ([]power.CoefficientRow, error) {
	stream, err := s.rng.SeededStream(ctx, "outcome-simulation", seed)
	if err != nil {
		return nil, core.NewRepetitionError(seed, err)
	}

	outcomes, err := outcome.Simulate(units, spec, stream)
	if err != nil {
		return nil, core.NewRepetitionError(seed, err)
	}

	rows, err := s.fitter.Fit(ctx, outcomes, units)
	if err != nil {
		return nil, core.NewRepetitionError(seed, err)
	}
	for i := range rows {
		rows[i].Seed = seed
	}
	return rows, nil
}
