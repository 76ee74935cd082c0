package assign

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/model"
)

// addGroupBookkeeping wires g_in[g,j] and g_span[g] (spec.md §4.1): g_in is
// true when any member of group g is assigned to instance j, and g_span
// counts how many instances the group touches. Grounded on the same
// channeling idiom as
// google-or-tools/ortools/sat/samples/binpacking_problem_sat.go's
// load-through-x linking.
func addGroupBookkeeping(cp *cpmodel.Builder, x [][]cpmodel.BoolVar, groups model.GroupIndex, j int) ([]cpmodel.IntVar, [][]cpmodel.BoolVar) {
	span := make([]cpmodel.IntVar, len(groups.Groups))
	touch := make([][]cpmodel.BoolVar, len(groups.Groups))

	for gi, g := range groups.Groups {
		members := groups.Members[g]
		touch[gi] = make([]cpmodel.BoolVar, j)
		for k := 0; k < j; k++ {
			gin := cp.NewBoolVar().WithName(fmt.Sprintf("g_in[%d][%d]", g, k))
			touch[gi][k] = gin

			col := make([]cpmodel.LinearArgument, len(members))
			for m, boxIdx := range members {
				col[m] = x[int(boxIdx)][k]
			}
			sum := cpmodel.NewLinearExpr().AddSum(col...)
			// gin <=> at least one member of g sits in instance k.
			cp.AddGreaterOrEqual(sum, gin)
			for _, boxIdx := range members {
				cp.AddLessOrEqual(x[int(boxIdx)][k], gin)
			}
		}

		spanVar := cp.NewIntVar(1, int64(j)).WithName(fmt.Sprintf("g_span[%d]", g))
		spanExpr := cpmodel.NewLinearExpr().AddSum(asArgs(touch[gi])...)
		cp.AddEquality(spanVar, spanExpr)
		span[gi] = spanVar
	}

	return span, touch
}

// addVolumeImbalance wires the Phase-1 objective surrogate for uneven
// volume usage decided in DESIGN.md: the sum, over every pair of used
// instances, of the absolute difference between their vol_used. Unused
// instances (vol_used forced to 0 by the capacity constraint) never
// contribute, since each pairwise term is gated by "both instances used".
func addVolumeImbalance(cp *cpmodel.Builder, y []cpmodel.BoolVar, volUsed []cpmodel.IntVar, j int, maxVol int64) cpmodel.IntVar {
	total := cp.NewIntVar(0, maxVol*int64(j)*int64(j))
	terms := make([]cpmodel.LinearArgument, 0, j*(j-1)/2)

	for a := 0; a < j; a++ {
		for b := a + 1; b < j; b++ {
			diff := cp.NewIntVar(0, maxVol)
			diffExpr := cpmodel.NewLinearExpr().Add(volUsed[a]).AddTerm(volUsed[b], -1)
			cp.AddAbsEquality(diff, diffExpr)

			bothUsed := cp.NewBoolVar()
			cp.AddMultiplicationEquality(bothUsed, y[a], y[b])

			gated := cp.NewIntVar(0, maxVol)
			cp.AddEquality(gated, diff).OnlyEnforceIf(bothUsed)
			cp.AddEquality(gated, cpmodel.NewConstant(0)).OnlyEnforceIf(bothUsed.Not())

			terms = append(terms, gated)
		}
	}

	if len(terms) == 0 {
		cp.AddEquality(total, cpmodel.NewConstant(0))
		return total
	}
	cp.AddEquality(total, cpmodel.NewLinearExpr().AddSum(terms...))
	return total
}

func asArgs(bs []cpmodel.BoolVar) []cpmodel.LinearArgument {
	out := make([]cpmodel.LinearArgument, len(bs))
	for i, b := range bs {
		out[i] = b
	}
	return out
}
