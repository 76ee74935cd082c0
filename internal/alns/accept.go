package alns

import "math/rand"

// uphillProbability is the Acceptance Criterion's fixed chance of accepting
// a non-improving candidate as current (spec.md §4.7).
const uphillProbability = 0.05

// Decision is the Acceptance Criterion's verdict (spec.md §4.7).
type Decision int

const (
	Reject Decision = iota
	AcceptAsCurrent
	AcceptAsBest
)

// scored is the minimal view of a state the Acceptance Criterion needs:
// its feasibility and cached score.
type scored interface {
	Feasible() bool
	Score() (float64, bool)
}

// Accept implements spec.md §4.7's decision table. best and current are
// the states the candidate is compared against; rng drives the uphill
// branch.
func Accept(best, current, candidate scored, rng *rand.Rand) Decision {
	if !candidate.Feasible() {
		return Reject
	}
	candidateScore, _ := candidate.Score()
	bestScore, bestValid := best.Score()
	if bestValid && candidateScore < bestScore {
		return AcceptAsBest
	}
	currentScore, currentValid := current.Score()
	if currentValid && candidateScore < currentScore {
		return AcceptAsCurrent
	}
	if rng.Float64() < uphillProbability {
		return AcceptAsCurrent
	}
	return Reject
}
