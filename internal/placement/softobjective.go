package placement

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// addSoftObjective wires the six weighted placement-quality terms of
// spec.md §4.2's table. Every term is maximized (a zero weight drops the
// term from the objective entirely, since its coefficient is zero).
// Grounded term-for-term on original_source/model_optimizations.py.
func addSoftObjective(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec, w ingest.SoftWeights, boxes []model.Box) {
	obj := cpmodel.NewLinearExpr()

	if w.TotalFloorArea != 0 {
		for _, area := range floorAreaTerms(cp, b, spec) {
			obj.AddTerm(area, w.TotalFloorArea)
		}
	}
	if w.LargeBaseLowerLinear != 0 {
		for _, term := range largeBaseLowerLinearTerms(cp, b, spec) {
			obj.AddTerm(term, w.LargeBaseLowerLinear)
		}
	}
	if w.LargeBaseLowerQuadratic != 0 {
		for _, term := range largeBaseLowerQuadraticTerms(cp, b, spec) {
			obj.AddTerm(term, w.LargeBaseLowerQuadratic)
		}
	}
	if w.VolumeLower != 0 {
		for _, vt := range volumeLowerTerms(cp, b, spec, boxes) {
			obj.AddTerm(vt.heightFromBottom, w.VolumeLower*vt.volume)
		}
	}
	if w.SurfaceContact != 0 {
		for _, term := range surfaceContactTerms(cp, b, spec) {
			obj.AddTerm(term, w.SurfaceContact)
		}
	}
	if w.BiggestFaceDown != 0 {
		for _, bv := range biggestFaceDownVars(b) {
			obj.AddTerm(bv, w.BiggestFaceDown)
		}
	}

	cp.Maximize(obj)
}

// floorAreaTerms: on_floor[i] * l_eff[i] * w_eff[i] (total floor area
// covered). Grounded on get_total_floor_area_covered.
func floorAreaTerms(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec) []cpmodel.IntVar {
	maxArea := spec.Size.L * spec.Size.W
	terms := make([]cpmodel.IntVar, len(b.BoxIndices))
	for i := range b.BoxIndices {
		tmp := cp.NewIntVar(0, maxArea).WithName(fmt.Sprintf("floor_area_base_%d", i))
		cp.AddMultiplicationEquality(tmp, b.LEff[i], b.WEff[i])
		area := cp.NewIntVar(0, maxArea).WithName(fmt.Sprintf("floor_area_%d", i))
		cp.AddMultiplicationEquality(area, b.OnFloor[i], tmp)
		terms[i] = area
	}
	return terms
}

// largeBaseLowerLinearTerms: (l_eff[i]*w_eff[i]) * (H - z[i]). Grounded on
// prefer_put_boxes_lower_z.
func largeBaseLowerLinearTerms(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec) []cpmodel.IntVar {
	maxArea := spec.Size.L * spec.Size.W
	maxHeight := spec.Size.H
	terms := make([]cpmodel.IntVar, len(b.BoxIndices))
	for i := range b.BoxIndices {
		baseArea := cp.NewIntVar(0, maxArea)
		cp.AddMultiplicationEquality(baseArea, b.LEff[i], b.WEff[i])

		heightFromBottom := cp.NewIntVar(0, maxHeight)
		cp.AddEquality(heightFromBottom, cpmodel.NewLinearExpr().AddConstant(maxHeight).AddTerm(b.Z[i], -1))

		weighted := cp.NewIntVar(0, maxArea*maxHeight)
		cp.AddMultiplicationEquality(weighted, baseArea, heightFromBottom)
		terms[i] = weighted
	}
	return terms
}

// largeBaseLowerQuadraticTerms: (l_eff[i]*w_eff[i]) * (H - z[i])^2.
// Grounded on prefer_put_boxes_lower_z_non_linear.
func largeBaseLowerQuadraticTerms(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec) []cpmodel.IntVar {
	maxArea := spec.Size.L * spec.Size.W
	maxHeight := spec.Size.H
	terms := make([]cpmodel.IntVar, len(b.BoxIndices))
	for i := range b.BoxIndices {
		baseArea := cp.NewIntVar(0, maxArea)
		cp.AddMultiplicationEquality(baseArea, b.LEff[i], b.WEff[i])

		heightFromBottom := cp.NewIntVar(0, maxHeight)
		cp.AddEquality(heightFromBottom, cpmodel.NewLinearExpr().AddConstant(maxHeight).AddTerm(b.Z[i], -1))

		heightSq := cp.NewIntVar(0, maxHeight*maxHeight)
		cp.AddMultiplicationEquality(heightSq, heightFromBottom, heightFromBottom)

		weighted := cp.NewIntVar(0, maxArea*maxHeight*maxHeight)
		cp.AddMultiplicationEquality(weighted, baseArea, heightSq)
		terms[i] = weighted
	}
	return terms
}

// volumeLowerTerm pairs a box's height-from-bottom variable with its
// (orientation-invariant) nominal volume, since the volume factor of
// (nominal volume) * (H - z[i]) is a plain Go-side constant and needs no
// multiplication encoding.
type volumeLowerTerm struct {
	heightFromBottom cpmodel.IntVar
	volume           int64
}

// volumeLowerTerms: (nominal volume) * (H - z[i]). Grounded on
// original_source/model_optimizations.py's naming convention
// ("prefer_put_boxes_by_volume_lower_z_weight"); the term itself has no
// dedicated helper in the original and is derived directly from spec.md
// §4.2's table entry.
func volumeLowerTerms(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec, boxes []model.Box) []volumeLowerTerm {
	maxHeight := spec.Size.H
	terms := make([]volumeLowerTerm, len(b.BoxIndices))
	for i, boxIdx := range b.BoxIndices {
		heightFromBottom := cp.NewIntVar(0, maxHeight)
		cp.AddEquality(heightFromBottom, cpmodel.NewLinearExpr().AddConstant(maxHeight).AddTerm(b.Z[i], -1))
		terms[i] = volumeLowerTerm{heightFromBottom: heightFromBottom, volume: boxes[boxIdx].Volume()}
	}
	return terms
}

// surfaceContactTerms: for each box, the total x-y contact area with every
// box it rests directly atop. Grounded on prefer_maximize_surface_contact.
func surfaceContactTerms(cp *cpmodel.Builder, b *Built, spec model.ContainerSpec) []cpmodel.IntVar {
	n := len(b.BoxIndices)
	maxArea := spec.Size.L * spec.Size.W
	terms := make([]cpmodel.IntVar, 0, n)
	for i := 0; i < n; i++ {
		var contactWithAny []cpmodel.LinearArgument
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			isOnJ := cp.NewBoolVar()
			cp.AddEquality(b.Z[i], cpmodel.NewLinearExpr().Add(b.Z[j]).Add(b.HEff[j])).OnlyEnforceIf(isOnJ)
			cp.AddLessThan(b.X[i], cpmodel.NewLinearExpr().Add(b.X[j]).Add(b.LEff[j])).OnlyEnforceIf(isOnJ)
			cp.AddGreaterThan(cpmodel.NewLinearExpr().Add(b.X[i]).Add(b.LEff[i]), b.X[j]).OnlyEnforceIf(isOnJ)
			cp.AddLessThan(b.Y[i], cpmodel.NewLinearExpr().Add(b.Y[j]).Add(b.WEff[j])).OnlyEnforceIf(isOnJ)
			cp.AddGreaterThan(cpmodel.NewLinearExpr().Add(b.Y[i]).Add(b.WEff[i]), b.Y[j]).OnlyEnforceIf(isOnJ)

			tmpArea := cp.NewIntVar(0, maxArea)
			cp.AddMultiplicationEquality(tmpArea, b.LEff[i], b.WEff[i])
			areaIJ := cp.NewIntVar(0, maxArea)
			cp.AddMultiplicationEquality(areaIJ, isOnJ, tmpArea)
			contactWithAny = append(contactWithAny, areaIJ)
		}
		contact := cp.NewIntVar(0, maxArea)
		if len(contactWithAny) > 0 {
			cp.AddEquality(contact, cpmodel.NewLinearExpr().AddSum(contactWithAny...))
		} else {
			cp.AddEquality(contact, cpmodel.NewConstant(0))
		}
		terms = append(terms, contact)
	}
	return terms
}

// biggestFaceDownVars collects, for each FREE-rotation box, the orientation
// literal(s) whose bottom face area equals the box's maximum achievable
// bottom-face area. Grounded on
// prefer_side_with_biggest_surface_at_the_bottom.
func biggestFaceDownVars(b *Built) []cpmodel.BoolVar {
	var out []cpmodel.BoolVar
	for i, perms := range b.Perms {
		if len(perms) < 6 {
			// Only FREE rotation (six orientations) carries a meaningful
			// choice of bottom face; NONE/Z-AXIS boxes have no freedom here.
			continue
		}
		maxArea := int64(0)
		for _, d := range perms {
			if a := d.L * d.W; a > maxArea {
				maxArea = a
			}
		}
		for k, d := range perms {
			if d.L*d.W == maxArea {
				out = append(out, b.Orient[i][k])
			}
		}
	}
	return out
}
