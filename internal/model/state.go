package model

// State is the unit manipulated by the ALNS loop (spec.md §3): the current
// assignment plus, per container instance, cached placement data and
// status, an aggregate score, and a dirty flag invalidating that cache.
type State struct {
	Assignment Assignment
	// ContainerPlacements is indexed in parallel with Assignment.Instances.
	ContainerPlacements []ContainerPlacement
	// Removed holds the box indices a Destroy Operator most recently
	// unassigned (spec.md §4.5, step 5: "record the removed box indices on
	// the state").
	Removed []BoxIndex

	score      float64
	scoreValid bool
}

// NewState builds a state from a fresh assignment with no cached
// placements.
func NewState(a Assignment) State {
	return State{
		Assignment:          a,
		ContainerPlacements: make([]ContainerPlacement, len(a.Instances)),
	}
}

// Clone deep-copies a State, matching spec.md §9's "State copying for
// operators" design note: copying must be cheap and is the only
// variable-sized component is the assignment.
func (s State) Clone() State {
	out := State{
		Assignment: s.Assignment.Clone(),
		Removed:    append([]BoxIndex(nil), s.Removed...),
		score:      s.score,
		scoreValid: s.scoreValid,
	}
	out.ContainerPlacements = make([]ContainerPlacement, len(s.ContainerPlacements))
	for i, cp := range s.ContainerPlacements {
		out.ContainerPlacements[i] = cp.Clone()
	}
	return out
}

// Score returns the cached aggregate score and whether it is valid.
func (s State) Score() (float64, bool) {
	return s.score, s.scoreValid
}

// SetScore caches an aggregate score, clearing the dirty flag.
func (s *State) SetScore(score float64) {
	s.score = score
	s.scoreValid = true
}

// Invalidate marks the cached score dirty. Any mutation to Assignment or
// ContainerPlacements must call this (spec.md §4.4: "any mutation
// invalidates the cache").
func (s *State) Invalidate() {
	s.scoreValid = false
}

// Feasible reports whether no container instance carries status
// Infeasible (spec.md §4.4: "A state is feasible iff no container has
// status UNFEASIBLE").
func (s State) Feasible() bool {
	for _, cp := range s.ContainerPlacements {
		if cp.Status == StatusInfeasible {
			return false
		}
	}
	return true
}
