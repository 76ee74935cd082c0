// Package assign implements the Assignment Model Builder (AMB, spec.md
// §4.1): it builds a CP-SAT model that decides, for each box, which
// container instance holds it, subject to per-instance weight and
// volume capacity, with soft penalties for splitting a group across
// instances and for uneven volume usage across the used instances.
// Grounded on
// google-or-tools/ortools/sat/samples/binpacking_problem_sat.go for the
// load/x channeling pattern and on original_source/assignment_model.py for
// the constraint and objective shape.
package assign

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/model"
)

// Weights carries the Phase 1 objective weights of spec.md §4.1, both
// externally configurable and defaulting to 1.
type Weights struct {
	LambdaGroup   float64
	LambdaBalance float64
}

// Built is the CP-SAT model plus every decision variable the orchestrator
// or the ALNS repair step needs to read back or pin.
type Built struct {
	CP *cpmodel.Builder

	// X[i][j] is true when box i is assigned to instance j.
	X [][]cpmodel.BoolVar
	// Y[j] is true when instance j holds at least one box.
	Y []cpmodel.BoolVar
	// VolUsed[j] is the summed nominal volume of boxes assigned to
	// instance j.
	VolUsed []cpmodel.IntVar

	// GroupIn[gi][k] is true when group Groups.Groups[gi] touches instance
	// k (spec.md §4.1's g_in[g,j]).
	GroupIn [][]cpmodel.BoolVar
	// GroupSpan[gi] counts how many instances group Groups.Groups[gi]
	// touches (spec.md §4.1's g_span[g]).
	GroupSpan []cpmodel.IntVar

	Groups model.GroupIndex
	J      int
}

// FixedAssignments pins a subset of boxes to a specific instance index; it
// is the ALNS repair channel of spec.md §4.1 ("fixed_assignments").
type FixedAssignments map[model.BoxIndex]int

// Build constructs the AMB model for boxes against spec, bounding the
// number of candidate instances by j. fixed, when non-nil, pins the listed
// boxes to their given instance (repair mode); all other boxes remain free.
func Build(boxes []model.Box, spec model.ContainerSpec, j int, fixed FixedAssignments, w Weights) (*Built, error) {
	if j <= 0 {
		return nil, fmt.Errorf("assign: container bound j must be positive, got %d", j)
	}

	cp := cpmodel.NewCpModelBuilder()
	n := len(boxes)
	groups := model.BuildGroupIndex(boxes)

	x := make([][]cpmodel.BoolVar, n)
	for i := range boxes {
		x[i] = make([]cpmodel.BoolVar, j)
		for k := 0; k < j; k++ {
			x[i][k] = cp.NewBoolVar().WithName(fmt.Sprintf("x[%d][%d]", i, k))
		}
	}

	y := make([]cpmodel.BoolVar, j)
	for k := 0; k < j; k++ {
		y[k] = cp.NewBoolVar().WithName(fmt.Sprintf("y[%d]", k))
	}

	volUsed := make([]cpmodel.IntVar, j)
	maxVol := spec.Volume()
	for k := 0; k < j; k++ {
		volUsed[k] = cp.NewIntVar(0, maxVol).WithName(fmt.Sprintf("vol_used[%d]", k))
	}

	// Every box is assigned to exactly one instance (spec.md §4.1, "every
	// box MUST be covered").
	for i := range boxes {
		cp.AddExactlyOne(x[i]...)
	}

	// Usage coupling: an instance is "used" iff it holds at least one box.
	for k := 0; k < j; k++ {
		col := make([]cpmodel.LinearArgument, n)
		for i := range boxes {
			col[i] = x[i][k]
		}
		sum := cpmodel.NewLinearExpr().AddSum(col...)
		cp.AddGreaterOrEqual(sum, y[k])
		for i := range boxes {
			cp.AddLessOrEqual(x[i][k], y[k])
		}
	}

	// Weight and volume capacity per instance.
	for k := 0; k < j; k++ {
		weightExpr := cpmodel.NewLinearExpr()
		for i, b := range boxes {
			weightExpr.AddTerm(x[i][k], b.Weight)
		}
		cp.AddLessOrEqual(weightExpr, cpmodel.NewConstant(spec.MaxWeight))

		volExpr := cpmodel.NewLinearExpr()
		for i, b := range boxes {
			volExpr.AddTerm(x[i][k], b.Volume())
		}
		cp.AddEquality(volUsed[k], volExpr)
	}

	// Lexicographic symmetry breaking on interchangeable instances (spec.md
	// §4.1: "y[j] >= y[j+1]").
	for k := 0; k+1 < j; k++ {
		cp.AddGreaterOrEqual(y[k], y[k+1])
	}

	// Repair channel: pin fixed boxes to their given instance.
	for boxIdx, inst := range fixed {
		i := int(boxIdx)
		if i < 0 || i >= n || inst < 0 || inst >= j {
			return nil, fmt.Errorf("assign: fixed assignment (%d -> %d) out of range", i, inst)
		}
		cp.AddEquality(x[i][inst], cpmodel.NewConstant(1))
	}

	groupSpan, groupTouch := addGroupBookkeeping(cp, x, groups, j)
	imbalance := addVolumeImbalance(cp, y, volUsed, j, maxVol)

	// CP-SAT objectives are integer-linear, so fractional lambdas are
	// represented by scaling every term of the objective by the same
	// factor; their relative weighting against the plain container count
	// is preserved regardless of the scale chosen.
	const scale = 1000
	obj := cpmodel.NewLinearExpr()
	for k := 0; k < j; k++ {
		obj.AddTerm(y[k], scale)
	}
	lambdaGroup := roundWeight(w.LambdaGroup, scale)
	if lambdaGroup != 0 {
		for gi := range groups.Groups {
			// g_span[g]-1 penalizes each extra instance a group touches
			// beyond the first.
			obj.AddTerm(groupSpan[gi], lambdaGroup)
			obj.AddConstant(-lambdaGroup)
		}
	}
	lambdaBalance := roundWeight(w.LambdaBalance, scale)
	if lambdaBalance != 0 {
		obj.AddTerm(imbalance, lambdaBalance)
	}
	cp.Minimize(obj)

	return &Built{
		CP:        cp,
		X:         x,
		Y:         y,
		VolUsed:   volUsed,
		GroupIn:   groupTouch,
		GroupSpan: groupSpan,
		Groups:    groups,
		J:         j,
	}, nil
}

// roundWeight scales a float lambda by scale and rounds to the nearest
// integer CP-SAT objective coefficient.
func roundWeight(lambda float64, scale int64) int64 {
	return int64(lambda*float64(scale) + 0.5)
}
