// Package orchestrator wires the Assignment Model Builder, Solver Driver,
// Placement Evaluator, and ALNS loop into the end-to-end pipeline of
// spec.md §4.9. Grounded on original_source/main.py's top-to-bottom flow
// (load -> Phase 1 -> optional ALNS -> Phase 2 -> save), adapted from a
// linear script into a library function the CLI drives.
package orchestrator

import (
	"math/rand"
	"time"

	log "github.com/golang/glog"

	"github.com/sabbadino/container-optimizations/internal/alns"
	"github.com/sabbadino/container-optimizations/internal/assign"
	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/evaluate"
	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/solve"
)

// Options parameterizes one end-to-end run, beyond what is already
// carried on ingest.Input/ingest.Settings.
type Options struct {
	NoALNS  bool
	Verbose bool
	Seed    int64
}

// Run executes spec.md §4.9's pipeline and returns the best state found
// (with placements current), or an *errs.Error whose Kind maps to an exit
// code through errs.Kind.ExitCode.
func Run(in ingest.Input, settings ingest.Settings, opts Options) (model.State, error) {
	if len(in.Boxes) == 0 {
		// spec.md §8: "Zero boxes -> one empty instance or zero instances
		// accepted; all downstream stages idempotent." There is nothing
		// for Phase 1 or Phase 2 to do, so skip both and report an empty,
		// feasible, zero-scored state rather than asking assign.Build for
		// a positive container bound it cannot satisfy.
		state := model.NewState(model.Assignment{})
		state.SetScore(0)
		return state, nil
	}

	weights := assign.Weights{LambdaGroup: settings.LambdaGroup, LambdaBalance: settings.LambdaBalance}
	assignSolveOpts := solve.Options{MaxTime: in.Phase1MaxTime, Seed: opts.Seed, LogProgress: opts.Verbose}
	placeSolveOpts := solve.Options{MaxTime: settings.MaxTime, Seed: opts.Seed, LogProgress: opts.Verbose}
	evalOpts := evaluate.Options{Settings: settings, Solve: placeSolveOpts}

	// One candidate instance per box always admits a covering assignment
	// when each box fits a container on its own.
	j := len(in.Boxes)
	if opts.Verbose {
		log.Infof("phase 1: %d boxes, container bound J=%d", len(in.Boxes), j)
	}

	initial, err := runPhase1(in.Boxes, in.Container, j, nil, weights, assignSolveOpts)
	if err != nil {
		return model.State{}, err
	}

	state := model.NewState(initial)
	if err := evaluate.Score(&state, in.Boxes, in.Container, evalOpts); err != nil {
		return model.State{}, err
	}

	if opts.NoALNS {
		return state, nil
	}

	best := runALNS(state, in, weights, assignSolveOpts, evalOpts, opts)

	// Final PE pass on the best state to ensure placements are current
	// (spec.md §4.9 step 5). It re-solves Phase 2 for best even when the
	// loop already scored that state.
	if err := evaluate.Score(&best, in.Boxes, in.Container, evalOpts); err != nil {
		return model.State{}, err
	}
	return best, nil
}

func runPhase1(boxes []model.Box, spec model.ContainerSpec, j int, fixed assign.FixedAssignments, weights assign.Weights, solveOpts solve.Options) (model.Assignment, error) {
	built, err := assign.Build(boxes, spec, j, fixed, weights)
	if err != nil {
		return model.Assignment{}, errs.Wrap(errs.KindSolverInternal, "building assignment model", err)
	}
	m, err := built.CP.Model()
	if err != nil {
		return model.Assignment{}, errs.Wrap(errs.KindSolverInternal, "instantiating assignment model", err)
	}

	res, err := solve.Solve(m, solveOpts)
	if err != nil {
		return model.Assignment{}, err
	}
	if res.Status == model.StatusModelInvalid {
		return model.Assignment{}, errs.New(errs.KindSolverInternal, "phase 1 assignment model is invalid")
	}
	if !res.Status.IsSolved() {
		return model.Assignment{}, errs.New(errs.KindAssignmentInfeasible, "phase 1 assignment has no feasible solution within the time budget")
	}

	return assign.Extract(built, res, len(boxes))
}

func runALNS(initial model.State, in ingest.Input, weights assign.Weights, assignSolveOpts solve.Options, evalOpts evaluate.Options, opts Options) model.State {
	rng := rand.New(rand.NewSource(opts.Seed))
	best := initial.Clone()
	current := initial.Clone()

	stopper := alns.NewStopper(alns.StopParams{
		MaxIterations:  in.ALNS.NumIterations,
		MaxNoImprove:   in.ALNS.MaxNoImprove,
		WallClockLimit: time.Duration(in.ALNS.TimeLimit * float64(time.Second)),
	}, time.Now())

	destroyParams := alns.DestroyParams{PercentRemove: float64(in.ALNS.NumCanBeMovedPercentage)}
	repairOpts := alns.RepairOptions{Boxes: in.Boxes, Spec: in.Container, Weights: weights, Solve: assignSolveOpts}

	for !stopper.Done(time.Now()) {
		destroyed := alns.Destroy(current, destroyParams, rng)
		candidate, err := alns.Repair(destroyed, repairOpts)
		if err != nil {
			if opts.Verbose {
				log.Warningf("alns: repair failed, rejecting candidate: %v", err)
			}
			stopper.RecordIteration(false)
			continue
		}
		if err := evaluate.Score(&candidate, in.Boxes, in.Container, evalOpts); err != nil {
			if opts.Verbose {
				log.Warningf("alns: placement evaluation failed, rejecting candidate: %v", err)
			}
			stopper.RecordIteration(false)
			continue
		}

		improved := false
		switch alns.Accept(&best, &current, &candidate, rng) {
		case alns.AcceptAsBest:
			best = candidate.Clone()
			current = candidate
			improved = true
		case alns.AcceptAsCurrent:
			current = candidate
		case alns.Reject:
		}
		stopper.RecordIteration(improved)
	}

	return best
}
