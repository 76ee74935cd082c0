package assign

import "github.com/sabbadino/container-optimizations/internal/model"

// DefaultContainerBound computes the tighter J candidate
// `ceil(Σ weight / W_max) + ceil(Σ vol / (L·W·H))`, clamped to
// [1, len(boxes)] for a non-empty input and 0 for an empty one. The sum is
// not always enough instances for a feasible assignment when boxes do not
// pack evenly: five boxes of weight 51 (negligible volume) against
// W_max=100 give 3+1=4, yet need 5. The orchestrator's fresh Phase 1 solve
// therefore uses len(boxes) instead.
func DefaultContainerBound(boxes []model.Box, spec model.ContainerSpec) int {
	if len(boxes) == 0 {
		return 0
	}
	var totalWeight, totalVolume int64
	for _, b := range boxes {
		totalWeight += b.Weight
		totalVolume += b.Volume()
	}
	byWeight := ceilDiv(totalWeight, spec.MaxWeight)
	byVolume := ceilDiv(totalVolume, spec.Volume())
	bound := byWeight + byVolume
	if bound < 1 {
		bound = 1
	}
	if bound > len(boxes) {
		bound = len(boxes)
	}
	return bound
}

func ceilDiv(a, b int64) int {
	if b <= 0 {
		return 0
	}
	if a <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}
