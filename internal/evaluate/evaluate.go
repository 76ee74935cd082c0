// Package evaluate implements the Placement Evaluator (PE, spec.md §4.4):
// given an assignment, it runs the Placement Model Builder and Solver
// Driver on every used container instance and aggregates a scalar quality
// score from the per-container solver statuses. Grounded on spec.md §4.4's
// formula and on original_source/main.py's per-container Phase 2 loop,
// which skips containers holding no boxes (SPEC_FULL.md §C.3).
package evaluate

import (
	"fmt"

	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/placement"
	"github.com/sabbadino/container-optimizations/internal/solve"
)

// Score weights of spec.md §4.4: `1000*|UNFEASIBLE| + 500*|UNKNOWN| -
// 2*|OPTIMAL| - 1*|FEASIBLE|`.
const (
	weightInfeasible = 1000.0
	weightUnknown    = 500.0
	weightOptimal    = -2.0
	weightFeasible   = -1.0
)

// Options parameterizes one Run call.
type Options struct {
	Settings ingest.Settings
	Solve    solve.Options
}

// Run evaluates an assignment, producing one model.ContainerPlacement per
// instance (empty instances get a zero-value, unscored entry) and the
// aggregate score. An INFEASIBLE or UNKNOWN container is recorded in its
// status and scored, not returned as an error. Run does return an error
// when the PMB cannot build or instantiate a model, when the solver
// invocation itself fails, or when the solver reports MODEL_INVALID.
func Run(a model.Assignment, boxes []model.Box, spec model.ContainerSpec, opts Options) ([]model.ContainerPlacement, float64, error) {
	placements := make([]model.ContainerPlacement, len(a.Instances))
	var score float64

	for j, inst := range a.Instances {
		if len(inst.Boxes) == 0 {
			continue
		}

		built, err := placement.Build(boxes, inst.Boxes, spec, opts.Settings)
		if err != nil {
			return nil, 0, errs.Wrap(errs.KindSolverInternal, fmt.Sprintf("building placement model for instance %d", j), err)
		}
		m, err := built.CP.Model()
		if err != nil {
			return nil, 0, errs.Wrap(errs.KindSolverInternal, fmt.Sprintf("instantiating placement model for instance %d", j), err)
		}

		res, err := solve.Solve(m, opts.Solve)
		if err != nil {
			return nil, 0, err
		}
		if res.Status == model.StatusModelInvalid {
			return nil, 0, errs.New(errs.KindSolverInternal, fmt.Sprintf("placement model for instance %d is invalid", j))
		}

		if res.Status.IsSolved() {
			cp, err := placement.Extract(built, res)
			if err != nil {
				return nil, 0, err
			}
			placements[j] = cp
		} else {
			placements[j] = model.ContainerPlacement{Status: res.Status}
		}

		score += termFor(placements[j].Status)
	}

	return placements, score, nil
}

// Score evaluates state.Assignment and caches the result on state
// (ContainerPlacements and the aggregate score), per spec.md §4.4: "PE
// caches its result on the state; any mutation invalidates the cache."
func Score(state *model.State, boxes []model.Box, spec model.ContainerSpec, opts Options) error {
	placements, score, err := Run(state.Assignment, boxes, spec, opts)
	if err != nil {
		return err
	}
	state.ContainerPlacements = placements
	state.SetScore(score)
	return nil
}

// termFor never sees model.StatusModelInvalid: Run returns a fatal
// errs.KindSolverInternal for that status before scoring, per spec.md §7.
func termFor(status model.Status) float64 {
	switch status {
	case model.StatusInfeasible:
		return weightInfeasible
	case model.StatusUnknown:
		return weightUnknown
	case model.StatusOptimal:
		return weightOptimal
	case model.StatusFeasible:
		return weightFeasible
	default:
		return 0
	}
}
