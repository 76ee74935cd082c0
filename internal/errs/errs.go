// Package errs implements the error taxonomy of spec.md §7 as a tagged
// sum, queried with errors.As rather than string-matching.
package errs

import "fmt"

// Kind is the tagged-sum discriminant over spec.md §7's error taxonomy.
type Kind int

const (
	// KindInputMalformed: ingest could not parse or validate the input
	// document. Fatal at the CLI, exit code 1.
	KindInputMalformed Kind = iota
	// KindAssignmentInfeasible: Phase 1 returned INFEASIBLE. Fatal at the
	// CLI, exit code 2.
	KindAssignmentInfeasible
	// KindPlacementUnfeasible: Phase 2 returned INFEASIBLE for a container.
	// Non-fatal: recorded in per-container status; during ALNS it causes
	// candidate rejection by the Acceptance Criterion.
	KindPlacementUnfeasible
	// KindSolverTimeout: a solve returned UNKNOWN. Non-fatal; treated as
	// feasible with a penalty in Placement Evaluator scoring.
	KindSolverTimeout
	// KindSolverInternal: MODEL_INVALID or an unexpected solver outcome.
	// Fatal at the CLI, exit code 3.
	KindSolverInternal
)

func (k Kind) String() string {
	switch k {
	case KindInputMalformed:
		return "InputMalformed"
	case KindAssignmentInfeasible:
		return "AssignmentInfeasible"
	case KindPlacementUnfeasible:
		return "PlacementUnfeasible"
	case KindSolverTimeout:
		return "SolverTimeout"
	case KindSolverInternal:
		return "SolverInternal"
	default:
		return "Unknown"
	}
}

// ExitCode maps a fatal Kind to the CLI exit code of spec.md §6. Non-fatal
// kinds (PlacementUnfeasible, SolverTimeout) return 0 since they never
// terminate the process on their own.
func (k Kind) ExitCode() int {
	switch k {
	case KindInputMalformed:
		return 1
	case KindAssignmentInfeasible:
		return 2
	case KindSolverInternal:
		return 3
	default:
		return 0
	}
}

// Error is the concrete error type carrying a Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given Kind.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

// Wrap builds an Error of the given Kind, wrapping a cause.
func Wrap(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Msg: msg, Err: cause}
}
