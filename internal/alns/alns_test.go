package alns

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sabbadino/container-optimizations/internal/model"
)

func TestDestroyRemovesExactCountAndRecords(t *testing.T) {
	a := model.Assignment{Instances: []model.Instance{
		{Boxes: []model.BoxIndex{0, 1, 2}},
		{Boxes: []model.BoxIndex{3, 4}},
	}}
	st := model.NewState(a)
	rng := rand.New(rand.NewSource(1))

	out := Destroy(st, DestroyParams{NumRemove: 3}, rng)

	if len(out.Removed) != 3 {
		t.Fatalf("len(Removed) = %d, want 3", len(out.Removed))
	}
	remaining := out.Assignment.NumBoxes()
	if remaining != 2 {
		t.Fatalf("remaining boxes = %d, want 2", remaining)
	}
	seen := map[model.BoxIndex]bool{}
	for _, inst := range out.Assignment.Instances {
		for _, bi := range inst.Boxes {
			seen[bi] = true
		}
	}
	for _, bi := range out.Removed {
		if seen[bi] {
			t.Errorf("box %d appears both removed and still assigned", bi)
		}
	}
	// Original state must be untouched (Destroy deep-copies).
	if st.Assignment.NumBoxes() != 5 {
		t.Errorf("original state mutated: NumBoxes = %d, want 5", st.Assignment.NumBoxes())
	}
}

func TestDestroyPercentRemove(t *testing.T) {
	a := model.Assignment{Instances: []model.Instance{
		{Boxes: []model.BoxIndex{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}}
	st := model.NewState(a)
	rng := rand.New(rand.NewSource(2))

	out := Destroy(st, DestroyParams{PercentRemove: 30}, rng)
	if len(out.Removed) != 3 {
		t.Errorf("len(Removed) = %d, want 3 (30%% of 10)", len(out.Removed))
	}
}

type fakeScored struct {
	feasible bool
	score    float64
	valid    bool
}

func (f fakeScored) Feasible() bool             { return f.feasible }
func (f fakeScored) Score() (float64, bool) { return f.score, f.valid }

func TestAcceptRejectsInfeasible(t *testing.T) {
	best := fakeScored{feasible: true, score: 10, valid: true}
	current := fakeScored{feasible: true, score: 10, valid: true}
	candidate := fakeScored{feasible: false, score: 1, valid: true}
	rng := rand.New(rand.NewSource(1))
	if got := Accept(best, current, candidate, rng); got != Reject {
		t.Errorf("Accept = %v, want Reject", got)
	}
}

func TestAcceptAsBestWhenStrictlyBetter(t *testing.T) {
	best := fakeScored{feasible: true, score: 10, valid: true}
	current := fakeScored{feasible: true, score: 10, valid: true}
	candidate := fakeScored{feasible: true, score: 5, valid: true}
	rng := rand.New(rand.NewSource(1))
	if got := Accept(best, current, candidate, rng); got != AcceptAsBest {
		t.Errorf("Accept = %v, want AcceptAsBest", got)
	}
}

func TestAcceptAsCurrentWhenBetterThanCurrentOnly(t *testing.T) {
	best := fakeScored{feasible: true, score: 1, valid: true}
	current := fakeScored{feasible: true, score: 10, valid: true}
	candidate := fakeScored{feasible: true, score: 5, valid: true}
	rng := rand.New(rand.NewSource(1))
	if got := Accept(best, current, candidate, rng); got != AcceptAsCurrent {
		t.Errorf("Accept = %v, want AcceptAsCurrent", got)
	}
}

func TestAcceptRejectsWorseWithoutUphillRoll(t *testing.T) {
	best := fakeScored{feasible: true, score: 1, valid: true}
	current := fakeScored{feasible: true, score: 1, valid: true}
	candidate := fakeScored{feasible: true, score: 5, valid: true}
	// A seeded rng: across 100 rolls, at least one lands at or above
	// uphillProbability and so yields a Reject.
	rng := rand.New(rand.NewSource(1))
	seenReject := false
	for i := 0; i < 100; i++ {
		if Accept(best, current, candidate, rng) == Reject {
			seenReject = true
			break
		}
	}
	if !seenReject {
		t.Error("expected at least one Reject across 100 trials for a strictly worse candidate")
	}
}

func TestStopperIterationLimit(t *testing.T) {
	s := NewStopper(StopParams{MaxIterations: 2}, time.Now())
	if s.Done(time.Now()) {
		t.Fatal("should not be done before any iterations")
	}
	s.RecordIteration(false)
	if s.Done(time.Now()) {
		t.Fatal("should not be done after 1 of 2 iterations")
	}
	s.RecordIteration(false)
	if !s.Done(time.Now()) {
		t.Fatal("should be done after 2 of 2 iterations")
	}
}

func TestStopperNoImproveLimit(t *testing.T) {
	s := NewStopper(StopParams{MaxNoImprove: 2}, time.Now())
	s.RecordIteration(true)
	s.RecordIteration(false)
	if s.Done(time.Now()) {
		t.Fatal("should not be done after 1 no-improve")
	}
	s.RecordIteration(false)
	if !s.Done(time.Now()) {
		t.Fatal("should be done after 2 consecutive no-improve iterations")
	}
}

func TestStopperWallClock(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	s := NewStopper(StopParams{WallClockLimit: time.Minute}, start)
	if !s.Done(time.Now()) {
		t.Fatal("should be done once the wall-clock deadline has passed")
	}
}
