package alns

import (
	"github.com/sabbadino/container-optimizations/internal/assign"
	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/solve"
)

// RepairOptions carries everything the Repair Operator needs beyond the
// partial state itself.
type RepairOptions struct {
	Boxes   []model.Box
	Spec    model.ContainerSpec
	Weights assign.Weights
	Solve   solve.Options
}

// Repair re-solves Phase 1 with every still-present box pinned to its
// current instance, per spec.md §4.6. If the solver comes back INFEASIBLE,
// or UNKNOWN with no incumbent, Repair returns the input state unchanged.
func Repair(partial model.State, opts RepairOptions) (model.State, error) {
	currentUsed := usedInstanceCount(partial.Assignment)
	j := currentUsed + len(partial.Removed)
	if j <= 0 {
		return partial, nil
	}

	fixed := make(assign.FixedAssignments)
	for instIdx, inst := range partial.Assignment.Instances {
		for _, boxIdx := range inst.Boxes {
			fixed[boxIdx] = instIdx
		}
	}

	built, err := assign.Build(opts.Boxes, opts.Spec, j, fixed, opts.Weights)
	if err != nil {
		return model.State{}, errs.Wrap(errs.KindSolverInternal, "building repair assignment model", err)
	}
	m, err := built.CP.Model()
	if err != nil {
		return model.State{}, errs.Wrap(errs.KindSolverInternal, "instantiating repair assignment model", err)
	}

	res, err := solve.Solve(m, opts.Solve)
	if err != nil {
		return model.State{}, err
	}
	if !res.Status.IsSolved() {
		return partial, nil
	}

	rebuilt, err := assign.Extract(built, res, len(opts.Boxes))
	if err != nil {
		return partial, nil
	}

	next := model.NewState(rebuilt)
	return next, nil
}

func usedInstanceCount(a model.Assignment) int {
	n := 0
	for _, inst := range a.Instances {
		if len(inst.Boxes) > 0 {
			n++
		}
	}
	return n
}
