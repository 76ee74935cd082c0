// Package alns implements the outer Adaptive Large Neighborhood Search
// loop (spec.md §4.5–§4.8): a Destroy Operator, a Repair Operator, an
// Acceptance Criterion, and a Stopping Criterion, composed by the
// orchestrator into destroy -> repair -> evaluate -> accept -> stop
// iterations. Grounded in style on
// other_examples/joshuarotgers-USPS_Main__alns_engine.go for the
// destroy/repair/accept loop shape; the exact contracts below follow
// spec.md's own wording rather than that file's VRP-specific mechanics.
package alns

import (
	"math/rand"

	"github.com/sabbadino/container-optimizations/internal/model"
)

// DestroyParams selects how many boxes to unassign: either an absolute
// count (NumRemove) or a fraction of the total (PercentRemove), per
// spec.md §4.5.
type DestroyParams struct {
	NumRemove     int
	PercentRemove float64
}

func (p DestroyParams) resolve(total int) int {
	n := p.NumRemove
	if n == 0 && p.PercentRemove > 0 {
		n = int(p.PercentRemove/100*float64(total) + 0.5)
	}
	if n > total {
		n = total
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Destroy removes a uniformly sampled subset of box assignments from a
// deep copy of state, recording which boxes were removed. Grounded on
// spec.md §4.5's six numbered steps.
func Destroy(state model.State, params DestroyParams, rng *rand.Rand) model.State {
	out := state.Clone()

	type slot struct {
		instance, box int
	}
	var flat []slot
	for j, inst := range out.Assignment.Instances {
		for b := range inst.Boxes {
			flat = append(flat, slot{instance: j, box: b})
		}
	}

	n := params.resolve(len(flat))
	chosen := sampleWithoutReplacement(rng, len(flat), n)

	// Mark the chosen (instance, position) slots and rebuild each
	// instance's box list, so removals in the same instance don't shift
	// positions out from under one another.
	removeSet := make(map[slot]bool, n)
	for _, idx := range chosen {
		removeSet[flat[idx]] = true
	}

	removed := make([]model.BoxIndex, 0, n)
	for j := range out.Assignment.Instances {
		inst := &out.Assignment.Instances[j]
		kept := inst.Boxes[:0:0]
		for b, boxIdx := range inst.Boxes {
			if removeSet[slot{instance: j, box: b}] {
				removed = append(removed, boxIdx)
				continue
			}
			kept = append(kept, boxIdx)
		}
		inst.Boxes = kept
	}

	out.Removed = removed
	out.Invalidate()
	return out
}

// sampleWithoutReplacement returns k distinct indices in [0,n) chosen
// uniformly at random, by shuffling all n indices and keeping the first k.
func sampleWithoutReplacement(rng *rand.Rand, n, k int) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	rng.Shuffle(n, func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if k > n {
		k = n
	}
	return pool[:k]
}
