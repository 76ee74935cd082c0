package model

// RotationPolicy is a tagged sum over the rotation behaviors a box allows.
// The sole access pattern downstream is iteration over Orientations().
type RotationPolicy int

const (
	// RotationNone allows exactly one orientation: the box's nominal (l,w,h).
	RotationNone RotationPolicy = iota
	// RotationZAxis allows two orientations that keep the height axis fixed.
	RotationZAxis
	// RotationFree allows all six axis permutations of (l,w,h).
	RotationFree
)

// String renders the wire-format token for a rotation policy.
func (r RotationPolicy) String() string {
	switch r {
	case RotationNone:
		return "none"
	case RotationZAxis:
		return "z"
	case RotationFree:
		return "free"
	default:
		return "unknown"
	}
}

// ParseRotationPolicy decodes the wire-format token from spec.md §6.
func ParseRotationPolicy(s string) (RotationPolicy, bool) {
	switch s {
	case "none":
		return RotationNone, true
	case "z":
		return RotationZAxis, true
	case "free":
		return RotationFree, true
	default:
		return 0, false
	}
}

// Dims is a nominal or effective (length, width, height) triple.
type Dims struct {
	L, W, H int64
}

// Volume returns the (rotation-invariant) nominal volume.
func (d Dims) Volume() int64 {
	return d.L * d.W * d.H
}

// Permute returns the dims permuted according to the canonical orientation
// index, per spec.md §6 ("Orientation index -> permutation"):
//
//	0=(L,W,H) 1=(L,H,W) 2=(W,L,H) 3=(W,H,L) 4=(H,L,W) 5=(H,W,L)
func (d Dims) Permute(orientIndex int) Dims {
	l, w, h := d.L, d.W, d.H
	switch orientIndex {
	case 0:
		return Dims{l, w, h}
	case 1:
		return Dims{l, h, w}
	case 2:
		return Dims{w, l, h}
	case 3:
		return Dims{w, h, l}
	case 4:
		return Dims{h, l, w}
	case 5:
		return Dims{h, w, l}
	default:
		return d
	}
}

// allOrientationIndices is the fixed canonical order of all six axis
// permutations, shared by every rotation policy's allowed-orientation table.
var allOrientationIndices = [6]int{0, 1, 2, 3, 4, 5}

// AllowedOrientations returns the ordered list of canonical orientation
// indices (spec.md §6) that a box with this rotation policy may select.
func (r RotationPolicy) AllowedOrientations() []int {
	switch r {
	case RotationNone:
		return []int{0}
	case RotationZAxis:
		return []int{0, 2}
	case RotationFree:
		out := make([]int, len(allOrientationIndices))
		copy(out, allOrientationIndices[:])
		return out
	default:
		return []int{0}
	}
}
