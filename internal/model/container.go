package model

// ContainerSpec describes the single container geometry shared by every
// instance in the problem (spec.md §3, "Non-goals": one container type
// only).
type ContainerSpec struct {
	Size      Dims
	MaxWeight int64
}

// Volume returns L*W*H for this container.
func (c ContainerSpec) Volume() int64 {
	return c.Size.Volume()
}

// LongestAxis returns the index (0=x/length, 1=y/width, 2=z/height) of the
// container's longest interior axis, used by the simple symmetry-breaking
// mode in Phase 2 (spec.md §4.2).
func (c ContainerSpec) LongestAxis() int {
	axis := 0
	longest := c.Size.L
	if c.Size.W > longest {
		axis, longest = 1, c.Size.W
	}
	if c.Size.H > longest {
		axis = 2
	}
	return axis
}
