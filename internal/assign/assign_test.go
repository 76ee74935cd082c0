package assign

import (
	"testing"

	"github.com/sabbadino/container-optimizations/internal/model"
)

func TestDefaultContainerBound(t *testing.T) {
	spec := model.ContainerSpec{Size: model.Dims{L: 10, W: 10, H: 10}, MaxWeight: 100}
	boxes := []model.Box{
		{ID: 1, Nominal: model.Dims{L: 5, W: 5, H: 5}, Weight: 60},
		{ID: 2, Nominal: model.Dims{L: 5, W: 5, H: 5}, Weight: 60},
		{ID: 3, Nominal: model.Dims{L: 5, W: 5, H: 5}, Weight: 60},
	}
	// weight: ceil(180/100) = 2; volume: ceil(375/1000) = 1 -> 3, clamped
	// to len(boxes) = 3.
	if got := DefaultContainerBound(boxes, spec); got != 3 {
		t.Errorf("DefaultContainerBound = %d, want 3", got)
	}
}

func TestDefaultContainerBoundEmpty(t *testing.T) {
	spec := model.ContainerSpec{Size: model.Dims{L: 10, W: 10, H: 10}, MaxWeight: 100}
	if got := DefaultContainerBound(nil, spec); got != 0 {
		t.Errorf("DefaultContainerBound(nil) = %d, want 0", got)
	}
}

func TestBuildProducesCoveringAndCapacityConstraints(t *testing.T) {
	spec := model.ContainerSpec{Size: model.Dims{L: 10, W: 10, H: 10}, MaxWeight: 100}
	boxes := []model.Box{
		{ID: 1, Nominal: model.Dims{L: 5, W: 5, H: 5}, Weight: 60, GroupID: 9, HasGroup: true},
		{ID: 2, Nominal: model.Dims{L: 5, W: 5, H: 5}, Weight: 60, GroupID: 9, HasGroup: true},
	}
	built, err := Build(boxes, spec, 2, nil, Weights{LambdaGroup: 1, LambdaBalance: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(built.X) != 2 || len(built.X[0]) != 2 {
		t.Fatalf("unexpected X shape: %d x %d", len(built.X), len(built.X[0]))
	}
	if len(built.Y) != 2 {
		t.Fatalf("unexpected Y length: %d", len(built.Y))
	}
	if len(built.GroupSpan) != 1 {
		t.Fatalf("want a single group's g_span, got %d", len(built.GroupSpan))
	}

	m, err := built.CP.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	if len(m.GetVariables()) == 0 {
		t.Error("expected a non-empty CP model")
	}
	if m.GetObjective() == nil {
		t.Error("expected a minimization objective to be set")
	}
}

func TestBuildRejectsNonPositiveBound(t *testing.T) {
	spec := model.ContainerSpec{Size: model.Dims{L: 10, W: 10, H: 10}, MaxWeight: 100}
	if _, err := Build(nil, spec, 0, nil, Weights{}); err == nil {
		t.Fatal("expected error for j<=0")
	}
}

func TestBuildRejectsOutOfRangeFixedAssignment(t *testing.T) {
	spec := model.ContainerSpec{Size: model.Dims{L: 10, W: 10, H: 10}, MaxWeight: 100}
	boxes := []model.Box{{ID: 1, Nominal: model.Dims{L: 1, W: 1, H: 1}, Weight: 1}}
	fixed := FixedAssignments{0: 5}
	if _, err := Build(boxes, spec, 2, fixed, Weights{}); err == nil {
		t.Fatal("expected error for out-of-range fixed assignment")
	}
}
