package placement

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// applyAnchor pins one box's lower corner to the container's origin,
// per spec.md §4.2's optional anchor policy. Grounded on
// original_source/model_constraints.py's apply_anchor_logic.
func applyAnchor(cp *cpmodel.Builder, mode ingest.AnchorMode, boxes []model.Box, x, y, z []cpmodel.IntVar) {
	var idx int
	switch mode {
	case ingest.AnchorNone:
		return
	case ingest.AnchorLargestVolume:
		idx = largestVolumeIndex(boxes)
	case ingest.AnchorHeaviestWithinMostRecurring:
		idx = heaviestWithinMostRecurringIndex(boxes)
	default:
		return
	}
	cp.AddEquality(x[idx], cpmodel.NewConstant(0))
	cp.AddEquality(y[idx], cpmodel.NewConstant(0))
	cp.AddEquality(z[idx], cpmodel.NewConstant(0))
}

func largestVolumeIndex(boxes []model.Box) int {
	best := 0
	for i, b := range boxes {
		if b.Volume() > boxes[best].Volume() {
			best = i
		}
	}
	return best
}

// heaviestWithinMostRecurringIndex finds the most frequently occurring
// nominal size, then the heaviest box among that group.
func heaviestWithinMostRecurringIndex(boxes []model.Box) int {
	counts := make(map[model.Dims]int)
	for _, b := range boxes {
		counts[b.Nominal]++
	}
	var mostCommon model.Dims
	best := -1
	for _, b := range boxes {
		if counts[b.Nominal] > best {
			best = counts[b.Nominal]
			mostCommon = b.Nominal
		}
	}

	heaviest := -1
	heaviestWeight := int64(-1)
	for i, b := range boxes {
		if b.Nominal != mostCommon {
			continue
		}
		if b.Weight > heaviestWeight {
			heaviestWeight = b.Weight
			heaviest = i
		}
	}
	if heaviest < 0 {
		return 0
	}
	return heaviest
}
