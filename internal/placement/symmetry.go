package placement

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// addSymmetryBreaking orders interchangeable boxes (identical nominal size
// and rotation policy) to cut symmetric placements out of the search
// space, per spec.md §4.2. Grounded on
// original_source/model_optimizations.py's
// add_symmetry_breaking_for_identical_boxes.
func addSymmetryBreaking(cp *cpmodel.Builder, mode ingest.SymmetryMode, boxes []model.Box, x, y, z []cpmodel.IntVar, spec model.ContainerSpec) {
	if mode == ingest.SymmetryNone {
		return
	}
	n := len(boxes)
	axisVars := [3][]cpmodel.IntVar{x, y, z}
	maxAxis := spec.LongestAxis()

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if boxes[i].Nominal != boxes[j].Nominal || boxes[i].Rotation != boxes[j].Rotation {
				continue
			}
			if mode == ingest.SymmetrySimple {
				cp.AddLessOrEqual(axisVars[maxAxis][i], axisVars[maxAxis][j])
				continue
			}
			addFullLexicographicOrder(cp, x, y, z, i, j)
		}
	}
}

// addFullLexicographicOrder enforces (x,y,z)[i] <=lex (x,y,z)[j] via the
// channeling idiom of original_source/model_optimizations.py: i precedes j
// if x[i]<x[j], or x[i]==x[j] and y[i]<y[j], or x[i]==x[j] and y[i]==y[j]
// and z[i]<=z[j].
func addFullLexicographicOrder(cp *cpmodel.Builder, x, y, z []cpmodel.IntVar, i, j int) {
	xLess := cp.NewBoolVar()
	cp.AddLessThan(x[i], x[j]).OnlyEnforceIf(xLess)
	cp.AddGreaterOrEqual(x[i], x[j]).OnlyEnforceIf(xLess.Not())

	xEq := cp.NewBoolVar()
	cp.AddEquality(x[i], x[j]).OnlyEnforceIf(xEq)
	cp.AddNotEqual(x[i], x[j]).OnlyEnforceIf(xEq.Not())

	yLess := cp.NewBoolVar()
	cp.AddLessThan(y[i], y[j]).OnlyEnforceIf(yLess)
	cp.AddGreaterOrEqual(y[i], y[j]).OnlyEnforceIf(yLess.Not())

	yEq := cp.NewBoolVar()
	cp.AddEquality(y[i], y[j]).OnlyEnforceIf(yEq)
	cp.AddNotEqual(y[i], y[j]).OnlyEnforceIf(yEq.Not())

	xyEq := cp.NewBoolVar()
	cp.AddBoolAnd(xEq, yEq).OnlyEnforceIf(xyEq)
	cp.AddBoolOr(xEq.Not(), yEq.Not()).OnlyEnforceIf(xyEq.Not())
	cp.AddLessOrEqual(z[i], z[j]).OnlyEnforceIf(xyEq)

	xEqAndYLess := cp.NewBoolVar()
	cp.AddBoolAnd(xEq, yLess).OnlyEnforceIf(xEqAndYLess)
	cp.AddBoolOr(xEq.Not(), yLess.Not()).OnlyEnforceIf(xEqAndYLess.Not())

	cp.AddBoolOr(xLess, xEqAndYLess, xyEq)
}
