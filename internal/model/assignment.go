package model

import "sort"

// Instance is one container instance's set of assigned boxes. Box order
// within an instance is insertion order; correctness never depends on it,
// only stable reporting does (spec.md §3).
type Instance struct {
	Boxes []BoxIndex
}

// Assignment is an ordered sequence of container instances, the unit
// produced by Phase 1 (spec.md §3). It never mutates in place — each ALNS
// step and each repair produces a fresh Assignment.
type Assignment struct {
	Instances []Instance
}

// Clone returns a deep copy, matching spec.md §9's requirement that
// operators copy rather than mutate shared state.
func (a Assignment) Clone() Assignment {
	out := Assignment{Instances: make([]Instance, len(a.Instances))}
	for i, inst := range a.Instances {
		out.Instances[i].Boxes = append([]BoxIndex(nil), inst.Boxes...)
	}
	return out
}

// NumBoxes returns the total number of boxes assigned across all
// instances.
func (a Assignment) NumBoxes() int {
	n := 0
	for _, inst := range a.Instances {
		n += len(inst.Boxes)
	}
	return n
}

// InstanceOf returns the instance index holding boxIdx, or -1 if the box is
// unassigned.
func (a Assignment) InstanceOf(boxIdx BoxIndex) int {
	for j, inst := range a.Instances {
		for _, bi := range inst.Boxes {
			if bi == boxIdx {
				return j
			}
		}
	}
	return -1
}

// Weight sums the weight of boxes in one instance.
func (a Assignment) Weight(j int, boxes []Box) int64 {
	var total int64
	for _, bi := range a.Instances[j].Boxes {
		total += boxes[bi].Weight
	}
	return total
}

// VolumeUsed sums the nominal volume of boxes in one instance.
func (a Assignment) VolumeUsed(j int, boxes []Box) int64 {
	var total int64
	for _, bi := range a.Instances[j].Boxes {
		total += boxes[bi].Volume()
	}
	return total
}

// CheckCapacity verifies invariant (b)/(c) of spec.md §3 for every
// instance: weight and volume within the container's limits.
func (a Assignment) CheckCapacity(boxes []Box, spec ContainerSpec) bool {
	for j := range a.Instances {
		if a.Weight(j, boxes) > spec.MaxWeight {
			return false
		}
		if a.VolumeUsed(j, boxes) > spec.Volume() {
			return false
		}
	}
	return true
}

// CheckCovers verifies invariant (a) of spec.md §3: every box in
// [0,numBoxes) appears in exactly one instance.
func (a Assignment) CheckCovers(numBoxes int) bool {
	seen := make([]bool, numBoxes)
	count := 0
	for _, inst := range a.Instances {
		for _, bi := range inst.Boxes {
			if int(bi) < 0 || int(bi) >= numBoxes || seen[bi] {
				return false
			}
			seen[bi] = true
			count++
		}
	}
	return count == numBoxes
}

// SortedBoxes returns the instance's box indices in ascending order, used
// for stable reporting (spec.md §3).
func (inst Instance) SortedBoxes() []BoxIndex {
	out := append([]BoxIndex(nil), inst.Boxes...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
