package orchestrator

import (
	"errors"
	"testing"

	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
)

func smallInput() ingest.Input {
	return ingest.Input{
		Container:     model.ContainerSpec{Size: model.Dims{L: 4, W: 4, H: 2}, MaxWeight: 1000},
		Boxes: []model.Box{
			{ID: 1, Nominal: model.Dims{L: 1, W: 1, H: 4}, Weight: 10, Rotation: model.RotationFree},
			{ID: 2, Nominal: model.Dims{L: 2, W: 2, H: 1}, Weight: 5, Rotation: model.RotationFree},
		},
		Phase1MaxTime: 5,
		ALNS:          ingest.ALNSParams{NumIterations: 2, NumCanBeMovedPercentage: 50, TimeLimit: 5, MaxNoImprove: 2},
	}
}

func smallSettings() ingest.Settings {
	return ingest.Settings{
		Symmetry:      ingest.SymmetryFull,
		MaxTime:       5,
		Weights:       ingest.SoftWeights{TotalFloorArea: 1},
		LambdaGroup:   1,
		LambdaBalance: 1,
	}
}

func TestRunNoALNSProducesFeasibleState(t *testing.T) {
	state, err := Run(smallInput(), smallSettings(), Options{NoALNS: true, Seed: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !state.Assignment.CheckCovers(2) {
		t.Error("final assignment should cover both boxes")
	}
	if _, valid := state.Score(); !valid {
		t.Error("final state should carry a cached score")
	}
}

func TestRunWithALNSStopsAndStaysFeasibleOrBetter(t *testing.T) {
	initial, err := Run(smallInput(), smallSettings(), Options{NoALNS: true, Seed: 1})
	if err != nil {
		t.Fatalf("Run(no-alns): %v", err)
	}
	initialScore, _ := initial.Score()

	final, err := Run(smallInput(), smallSettings(), Options{NoALNS: false, Seed: 1})
	if err != nil {
		t.Fatalf("Run(alns): %v", err)
	}
	finalScore, valid := final.Score()
	if !valid {
		t.Fatal("final state should carry a cached score")
	}
	if finalScore > initialScore {
		t.Errorf("ALNS made the score worse: initial=%v final=%v", initialScore, finalScore)
	}
}

func TestRunWithZeroBoxesReturnsEmptyFeasibleState(t *testing.T) {
	in := smallInput()
	in.Boxes = nil

	state, err := Run(in, smallSettings(), Options{NoALNS: true, Seed: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(state.Assignment.Instances) != 0 {
		t.Errorf("Instances = %d, want 0 for a zero-box input", len(state.Assignment.Instances))
	}
	if !state.Feasible() {
		t.Error("an empty state must be feasible")
	}
	score, valid := state.Score()
	if !valid || score != 0 {
		t.Errorf("Score() = (%v, %v), want (0, true)", score, valid)
	}
}

func TestRunRejectsOverweightInput(t *testing.T) {
	in := smallInput()
	in.Container.MaxWeight = 1
	_, err := Run(in, smallSettings(), Options{NoALNS: true, Seed: 1})
	if err == nil {
		t.Fatal("expected an error for an input that cannot fit the weight budget")
	}
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindAssignmentInfeasible {
		t.Errorf("want KindAssignmentInfeasible, got %v", err)
	}
}
