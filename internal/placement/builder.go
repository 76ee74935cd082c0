// Package placement implements the Placement Model Builder (PMB, spec.md
// §4.2): given one container instance's boxes, it builds a CP-SAT model
// deciding each box's orientation and lower-corner position, subject to
// in-bounds, pairwise non-overlap, and no-floating/support constraints,
// plus an optional anchor and symmetry-breaking policy and six soft
// placement-quality objective terms. Grounded on
// original_source/model_setup.py (orientation/effective-dimension
// variables) and original_source/model_constraints.py (non-overlap,
// in-bounds, no-floating) translated into the Go CP-SAT builder idiom of
// google-or-tools/ortools/sat/samples/no_overlap_sample_sat.go and
// .../channeling_sample_sat.go.
package placement

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// Built is the CP-SAT model for one container instance, plus every
// decision variable Extract needs to read back a model.ContainerPlacement.
type Built struct {
	CP *cpmodel.Builder

	// BoxIndices maps a local position (the index into every slice below)
	// back to the box's global model.BoxIndex.
	BoxIndices []model.BoxIndex

	X, Y, Z          []cpmodel.IntVar
	LEff, WEff, HEff []cpmodel.IntVar
	Orient           [][]cpmodel.BoolVar
	Perms            [][]model.Dims
	// OrientIndices[i][k] is the canonical orientation index (spec.md §6)
	// that Orient[i][k] selects.
	OrientIndices [][]int
	OnFloor       []cpmodel.BoolVar
}

// Build constructs the PMB model for the boxes at boxIndices (global
// indices into the caller's box slice) inside one container of spec.
func Build(boxes []model.Box, boxIndices []model.BoxIndex, spec model.ContainerSpec, settings ingest.Settings) (*Built, error) {
	n := len(boxIndices)
	if n == 0 {
		return nil, fmt.Errorf("placement: no boxes to place")
	}

	cp := cpmodel.NewCpModelBuilder()

	x := make([]cpmodel.IntVar, n)
	y := make([]cpmodel.IntVar, n)
	z := make([]cpmodel.IntVar, n)
	for i := 0; i < n; i++ {
		x[i] = cp.NewIntVar(0, spec.Size.L).WithName(fmt.Sprintf("x_%d", i))
		y[i] = cp.NewIntVar(0, spec.Size.W).WithName(fmt.Sprintf("y_%d", i))
		z[i] = cp.NewIntVar(0, spec.Size.H).WithName(fmt.Sprintf("z_%d", i))
	}

	lEff := make([]cpmodel.IntVar, n)
	wEff := make([]cpmodel.IntVar, n)
	hEff := make([]cpmodel.IntVar, n)
	orient := make([][]cpmodel.BoolVar, n)
	perms := make([][]model.Dims, n)
	orientIdx := make([][]int, n)

	for i := 0; i < n; i++ {
		b := boxes[boxIndices[i]]
		allowed := b.Orientations()
		perms[i] = make([]model.Dims, len(allowed))
		orientIdx[i] = allowed
		orient[i] = make([]cpmodel.BoolVar, len(allowed))
		for k, oi := range allowed {
			perms[i][k] = b.Nominal.Permute(oi)
			orient[i][k] = cp.NewBoolVar().WithName(fmt.Sprintf("orient_%d_%d", i, oi))
		}
		cp.AddExactlyOne(orient[i]...)

		lEff[i] = cp.NewIntVar(0, spec.Size.L).WithName(fmt.Sprintf("l_eff_%d", i))
		wEff[i] = cp.NewIntVar(0, spec.Size.W).WithName(fmt.Sprintf("w_eff_%d", i))
		hEff[i] = cp.NewIntVar(0, spec.Size.H).WithName(fmt.Sprintf("h_eff_%d", i))
		for k, dims := range perms[i] {
			cp.AddEquality(lEff[i], cpmodel.NewConstant(dims.L)).OnlyEnforceIf(orient[i][k])
			cp.AddEquality(wEff[i], cpmodel.NewConstant(dims.W)).OnlyEnforceIf(orient[i][k])
			cp.AddEquality(hEff[i], cpmodel.NewConstant(dims.H)).OnlyEnforceIf(orient[i][k])
		}
	}

	addInsideContainerConstraint(cp, n, x, y, z, lEff, wEff, hEff, spec)
	addNoOverlapConstraint(cp, n, x, y, z, lEff, wEff, hEff)
	onFloor := addNoFloatingConstraint(cp, n, x, y, z, lEff, wEff, hEff)

	built := &Built{
		CP:            cp,
		BoxIndices:    append([]model.BoxIndex(nil), boxIndices...),
		X:             x,
		Y:             y,
		Z:             z,
		LEff:          lEff,
		WEff:          wEff,
		HEff:          hEff,
		Orient:        orient,
		Perms:         perms,
		OrientIndices: orientIdx,
		OnFloor:       onFloor,
	}

	localBoxes := make([]model.Box, n)
	for i, bi := range boxIndices {
		localBoxes[i] = boxes[bi]
	}

	applyAnchor(cp, settings.Anchor, localBoxes, x, y, z)
	addSymmetryBreaking(cp, settings.Symmetry, localBoxes, x, y, z, spec)
	addSoftObjective(cp, built, spec, settings.Weights, boxes)

	return built, nil
}

func addInsideContainerConstraint(cp *cpmodel.Builder, n int, x, y, z, lEff, wEff, hEff []cpmodel.IntVar, spec model.ContainerSpec) {
	for i := 0; i < n; i++ {
		cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x[i]).Add(lEff[i]), cpmodel.NewConstant(spec.Size.L))
		cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(y[i]).Add(wEff[i]), cpmodel.NewConstant(spec.Size.W))
		cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(z[i]).Add(hEff[i]), cpmodel.NewConstant(spec.Size.H))
	}
}

// addNoOverlapConstraint forbids two boxes from sharing any point in 3-D
// space by requiring at least one of six pairwise separation booleans to
// hold (spec.md §4.2's "no-overlap via separation booleans"). Grounded
// directly on original_source/model_constraints.py's
// add_no_overlap_constraint.
func addNoOverlapConstraint(cp *cpmodel.Builder, n int, x, y, z, lEff, wEff, hEff []cpmodel.IntVar) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			leftOfJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x[i]).Add(lEff[i]), x[j]).OnlyEnforceIf(leftOfJ)
			rightOfJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x[j]).Add(lEff[j]), x[i]).OnlyEnforceIf(rightOfJ)
			frontOfJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(y[i]).Add(wEff[i]), y[j]).OnlyEnforceIf(frontOfJ)
			behindJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(y[j]).Add(wEff[j]), y[i]).OnlyEnforceIf(behindJ)
			belowJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(z[i]).Add(hEff[i]), z[j]).OnlyEnforceIf(belowJ)
			aboveJ := cp.NewBoolVar()
			cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(z[j]).Add(hEff[j]), z[i]).OnlyEnforceIf(aboveJ)
			cp.AddBoolOr(leftOfJ, rightOfJ, frontOfJ, behindJ, belowJ, aboveJ)
		}
	}
}

// addNoFloatingConstraint requires every box to either rest on the
// container floor or sit directly atop another box with x-y overlap
// (spec.md §4.2's support constraint). Grounded on
// original_source/model_constraints.py's add_no_floating_constraint.
func addNoFloatingConstraint(cp *cpmodel.Builder, n int, x, y, z, lEff, wEff, hEff []cpmodel.IntVar) []cpmodel.BoolVar {
	onFloor := make([]cpmodel.BoolVar, n)
	for i := 0; i < n; i++ {
		floor := cp.NewBoolVar().WithName(fmt.Sprintf("on_floor_%d", i))
		onFloor[i] = floor
		cp.AddEquality(z[i], cpmodel.NewConstant(0)).OnlyEnforceIf(floor)

		options := []cpmodel.BoolVar{floor}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			above := cp.NewBoolVar()
			cp.AddEquality(z[i], cpmodel.NewLinearExpr().Add(z[j]).Add(hEff[j])).OnlyEnforceIf(above)
			cp.AddLessThan(x[i], cpmodel.NewLinearExpr().Add(x[j]).Add(lEff[j])).OnlyEnforceIf(above)
			cp.AddGreaterThan(cpmodel.NewLinearExpr().Add(x[i]).Add(lEff[i]), x[j]).OnlyEnforceIf(above)
			cp.AddLessThan(y[i], cpmodel.NewLinearExpr().Add(y[j]).Add(wEff[j])).OnlyEnforceIf(above)
			cp.AddGreaterThan(cpmodel.NewLinearExpr().Add(y[i]).Add(wEff[i]), y[j]).OnlyEnforceIf(above)
			options = append(options, above)
		}
		cp.AddBoolOr(options...)
	}
	return onFloor
}
