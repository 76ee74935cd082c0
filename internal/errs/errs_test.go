package errs

import (
	"errors"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		k    Kind
		want int
	}{
		{KindInputMalformed, 1},
		{KindAssignmentInfeasible, 2},
		{KindPlacementUnfeasible, 0},
		{KindSolverTimeout, 0},
		{KindSolverInternal, 3},
	}
	for _, tc := range tests {
		if got := tc.k.ExitCode(); got != tc.want {
			t.Errorf("%v.ExitCode() = %d, want %d", tc.k, got, tc.want)
		}
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindSolverInternal, "model invalid", cause)

	var got *Error
	if !errors.As(err, &got) {
		t.Fatalf("errors.As failed to match *Error")
	}
	if got.Kind != KindSolverInternal {
		t.Errorf("Kind = %v, want KindSolverInternal", got.Kind)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}
