package model

// Box is an immutable input item. Identity is positional: BoxIndex values
// (plain ints into a Boxes slice) are the addressing scheme used throughout
// this module, per spec.md §3 ("internal indexing is by position, not id")
// and §9 ("Arena + index, not pointer graphs"). ID is a label only — it may
// repeat across the input without being an error (spec.md §9).
type Box struct {
	ID       int
	Nominal  Dims
	Weight   int64
	Rotation RotationPolicy
	// GroupID is the group tag. HasGroup reports whether it is present;
	// Go has no natural "absent int" so the presence flag is explicit
	// rather than relying on a sentinel value that could collide with a
	// real group id of 0.
	GroupID  int
	HasGroup bool
}

// Volume returns the box's nominal (rotation-invariant) volume.
func (b Box) Volume() int64 {
	return b.Nominal.Volume()
}

// Orientations returns the box's allowed canonical orientation indices.
func (b Box) Orientations() []int {
	return b.Rotation.AllowedOrientations()
}

// NormalizeCubeRotation forces rotation policy to RotationNone for a box
// whose three nominal dimensions are equal. A cube's six axis permutations
// are all geometrically identical, so allowing rotation only inflates the
// Phase 2 search space (orient[i,k] variables and symmetry constraints)
// without changing any reachable placement. Grounded on
// original_source/step2_container_box_placement_in_container.py, which
// applies the same normalization to an internal copy of the input without
// mutating what is reported back to the caller.
func (b Box) NormalizeCubeRotation() Box {
	d := b.Nominal
	if d.L == d.W && d.W == d.H && b.Rotation != RotationNone {
		b.Rotation = RotationNone
	}
	return b
}

// BoxIndex addresses a Box by its position in an Input's Boxes slice.
type BoxIndex int

// GroupIndex maps a group tag to the BoxIndex values that carry it,
// derived once at ingest. Generalizes
// original_source/main.py's `group_to_items = defaultdict(list)`.
type GroupIndex struct {
	// Groups lists distinct group tags in first-seen order, for stable
	// iteration (map iteration order is not stable in Go).
	Groups []int
	// Members maps a group tag to the box indices carrying it.
	Members map[int][]BoxIndex
}

// BuildGroupIndex derives group membership from an immutable box slice.
func BuildGroupIndex(boxes []Box) GroupIndex {
	gi := GroupIndex{Members: make(map[int][]BoxIndex)}
	for i, b := range boxes {
		if !b.HasGroup {
			continue
		}
		if _, ok := gi.Members[b.GroupID]; !ok {
			gi.Groups = append(gi.Groups, b.GroupID)
		}
		gi.Members[b.GroupID] = append(gi.Members[b.GroupID], BoxIndex(i))
	}
	return gi
}
