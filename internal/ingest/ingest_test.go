package ingest

import (
	"strings"
	"testing"

	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/model"
)

const sampleInput = `{
  "container": {"size": [4,4,2], "weight": 1000},
  "items": [
    {"id": 1, "size": [1,1,4], "weight": 10, "rotation": "free"},
    {"id": 2, "size": [2,2,1], "weight": 5, "rotation": "free", "group_id": 7}
  ],
  "solver_phase1_max_time_in_seconds": 30,
  "step2_settings_file": "settings.json",
  "alns_params": {"num_iterations": 50, "num_can_be_moved_percentage": 10, "time_limit": 30, "max_no_improve": 10}
}`

func TestDecodeInput(t *testing.T) {
	in, err := DecodeInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("DecodeInput: %v", err)
	}
	if in.Container.Size != (model.Dims{L: 4, W: 4, H: 2}) {
		t.Errorf("Container.Size = %v", in.Container.Size)
	}
	if len(in.Boxes) != 2 {
		t.Fatalf("len(Boxes) = %d, want 2", len(in.Boxes))
	}
	if in.Boxes[1].GroupID != 7 || !in.Boxes[1].HasGroup {
		t.Errorf("Boxes[1] group = (%d,%v), want (7,true)", in.Boxes[1].GroupID, in.Boxes[1].HasGroup)
	}
	if in.Boxes[0].HasGroup {
		t.Errorf("Boxes[0] should have no group")
	}
	if in.ALNS.NumIterations != 50 {
		t.Errorf("ALNS.NumIterations = %d, want 50", in.ALNS.NumIterations)
	}
}

func TestDecodeInputRejectsBadRotation(t *testing.T) {
	bad := strings.Replace(sampleInput, `"rotation": "free"`, `"rotation": "sideways"`, 1)
	_, err := DecodeInput(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for invalid rotation token")
	}
	var e *errs.Error
	if !asErr(err, &e) || e.Kind != errs.KindInputMalformed {
		t.Errorf("want KindInputMalformed, got %v", err)
	}
}

func TestDecodeInputRejectsNonPositiveContainer(t *testing.T) {
	bad := strings.Replace(sampleInput, `"size": [4,4,2]`, `"size": [0,4,2]`, 1)
	_, err := DecodeInput(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for zero container dimension")
	}
}

const sampleSettings = `{
  "symmetry_mode": "full",
  "solver_phase2_max_time_in_seconds": 45,
  "anchor_mode": "larger",
  "prefer_total_floor_area_weight": 3,
  "prefer_maximize_surface_contact_weight": 2
}`

func TestDecodeSettings(t *testing.T) {
	s, err := DecodeSettings(strings.NewReader(sampleSettings))
	if err != nil {
		t.Fatalf("DecodeSettings: %v", err)
	}
	if s.Symmetry != SymmetryFull {
		t.Errorf("Symmetry = %v, want SymmetryFull", s.Symmetry)
	}
	if s.Anchor != AnchorLargestVolume {
		t.Errorf("Anchor = %v, want AnchorLargestVolume", s.Anchor)
	}
	if s.Weights.TotalFloorArea != 3 {
		t.Errorf("Weights.TotalFloorArea = %d, want 3", s.Weights.TotalFloorArea)
	}
	if s.LambdaGroup != 1 || s.LambdaBalance != 1 {
		t.Errorf("default lambdas = (%v,%v), want (1,1)", s.LambdaGroup, s.LambdaBalance)
	}
}

func TestDecodeSettingsDefaultsSymmetryToFull(t *testing.T) {
	s, err := DecodeSettings(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("DecodeSettings: %v", err)
	}
	if s.Symmetry != SymmetryFull {
		t.Errorf("Symmetry = %v, want SymmetryFull", s.Symmetry)
	}
	if s.MaxTime != 60 {
		t.Errorf("MaxTime = %v, want 60", s.MaxTime)
	}
}

func asErr(err error, target **errs.Error) bool {
	e, ok := err.(*errs.Error)
	if ok {
		*target = e
	}
	return ok
}
