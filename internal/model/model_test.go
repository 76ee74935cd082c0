package model

import "testing"

func TestRotationPolicyAllowedOrientations(t *testing.T) {
	tests := []struct {
		name string
		r    RotationPolicy
		want []int
	}{
		{"none", RotationNone, []int{0}},
		{"z", RotationZAxis, []int{0, 2}},
		{"free", RotationFree, []int{0, 1, 2, 3, 4, 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.AllowedOrientations()
			if len(got) != len(tc.want) {
				t.Fatalf("AllowedOrientations() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("AllowedOrientations() = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestDimsPermute(t *testing.T) {
	d := Dims{L: 4, W: 2, H: 1}
	tests := []struct {
		idx  int
		want Dims
	}{
		{0, Dims{4, 2, 1}},
		{1, Dims{4, 1, 2}},
		{2, Dims{2, 4, 1}},
		{3, Dims{2, 1, 4}},
		{4, Dims{1, 4, 2}},
		{5, Dims{1, 2, 4}},
	}
	for _, tc := range tests {
		if got := d.Permute(tc.idx); got != tc.want {
			t.Errorf("Permute(%d) = %v, want %v", tc.idx, got, tc.want)
		}
	}
}

func TestZAxisOrientationMatchesSpecExample(t *testing.T) {
	// spec.md S5: item (4,2,1) rotation=z; orientation 0 is (4,2,1),
	// orientation 2 is (2,4,1).
	d := Dims{L: 4, W: 2, H: 1}
	if got := d.Permute(0); got != (Dims{4, 2, 1}) {
		t.Fatalf("orientation 0 = %v", got)
	}
	if got := d.Permute(2); got != (Dims{2, 4, 1}) {
		t.Fatalf("orientation 2 = %v", got)
	}
}

func TestNormalizeCubeRotation(t *testing.T) {
	cube := Box{Nominal: Dims{2, 2, 2}, Rotation: RotationFree}
	got := cube.NormalizeCubeRotation()
	if got.Rotation != RotationNone {
		t.Errorf("cube rotation = %v, want RotationNone", got.Rotation)
	}

	nonCube := Box{Nominal: Dims{2, 3, 2}, Rotation: RotationFree}
	got = nonCube.NormalizeCubeRotation()
	if got.Rotation != RotationFree {
		t.Errorf("non-cube rotation = %v, want RotationFree", got.Rotation)
	}
}

func TestBuildGroupIndex(t *testing.T) {
	boxes := []Box{
		{GroupID: 1, HasGroup: true},
		{HasGroup: false},
		{GroupID: 1, HasGroup: true},
		{GroupID: 2, HasGroup: true},
	}
	gi := BuildGroupIndex(boxes)
	if len(gi.Groups) != 2 {
		t.Fatalf("Groups = %v, want 2 entries", gi.Groups)
	}
	if got := gi.Members[1]; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Members[1] = %v, want [0 2]", got)
	}
	if got := gi.Members[2]; len(got) != 1 || got[0] != 3 {
		t.Errorf("Members[2] = %v, want [3]", got)
	}
}

func TestAssignmentInvariants(t *testing.T) {
	boxes := []Box{
		{Nominal: Dims{1, 1, 1}, Weight: 5},
		{Nominal: Dims{1, 1, 1}, Weight: 5},
		{Nominal: Dims{1, 1, 1}, Weight: 5},
	}
	spec := ContainerSpec{Size: Dims{10, 10, 10}, MaxWeight: 12}

	a := Assignment{Instances: []Instance{
		{Boxes: []BoxIndex{0, 1}},
		{Boxes: []BoxIndex{2}},
	}}
	if !a.CheckCovers(3) {
		t.Error("CheckCovers(3) = false, want true")
	}
	if !a.CheckCapacity(boxes, spec) {
		t.Error("CheckCapacity = false, want true (10 <= 12)")
	}

	overWeight := Assignment{Instances: []Instance{{Boxes: []BoxIndex{0, 1, 2}}}}
	if overWeight.CheckCapacity(boxes, spec) {
		t.Error("CheckCapacity = true, want false (15 > 12)")
	}

	missing := Assignment{Instances: []Instance{{Boxes: []BoxIndex{0, 1}}}}
	if missing.CheckCovers(3) {
		t.Error("CheckCovers(3) = true, want false (box 2 missing)")
	}
}

func TestAssignmentCloneIsIndependent(t *testing.T) {
	a := Assignment{Instances: []Instance{{Boxes: []BoxIndex{0, 1}}}}
	b := a.Clone()
	b.Instances[0].Boxes[0] = 99
	if a.Instances[0].Boxes[0] == 99 {
		t.Error("Clone shares underlying storage with the original")
	}
}

func TestStateFeasible(t *testing.T) {
	s := NewState(Assignment{Instances: []Instance{{}, {}}})
	if !s.Feasible() {
		t.Error("fresh state should be feasible (no statuses set)")
	}
	s.ContainerPlacements[1].Status = StatusInfeasible
	if s.Feasible() {
		t.Error("state with an infeasible container should not be feasible")
	}
}

func TestStateScoreCache(t *testing.T) {
	s := NewState(Assignment{})
	if _, ok := s.Score(); ok {
		t.Error("fresh state should have an invalid score cache")
	}
	s.SetScore(42)
	if v, ok := s.Score(); !ok || v != 42 {
		t.Errorf("Score() = (%v, %v), want (42, true)", v, ok)
	}
	s.Invalidate()
	if _, ok := s.Score(); ok {
		t.Error("Invalidate() did not clear the score cache")
	}
}
