// Package solve implements the Solver Driver (spec.md §4.3): a thin,
// pure wrapper around the external CP-SAT solver that accepts a model and
// a wall-clock deadline and reports a tagged-sum status plus a value
// extractor. Grounded on
// google-or-tools/ortools/sat/go/cpmodel/cp_solver.go and
// .../samples/solve_with_time_limit_sample_sat.go.
package solve

import (
	"time"

	log "github.com/golang/glog"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// Options parameterizes one Solve call.
type Options struct {
	// MaxTime is the wall-clock deadline in seconds (spec.md §4.3).
	MaxTime float64
	// Seed, when non-zero, is forwarded to the solver for deterministic
	// search (spec.md §9, "Seedable RNG... MAY also be forwarded to the
	// CP solver if the solver exposes a deterministic seed").
	Seed int64
	// NumWorkers bounds the solver's internal worker pool; zero leaves the
	// solver default (spec.md §5: "Parallelism is permitted only inside
	// the SD via its solver's internal worker pool").
	NumWorkers int32
	// LogProgress enables the solver's own search log, gated by the
	// --verbose CLI flag.
	LogProgress bool
}

// Result is the outcome of one Solve call (spec.md §4.3's
// `(status, elapsed_seconds, value_extractor)` tuple, plus the solve
// statistics recovered from original_source/print_utils.py).
type Result struct {
	Status    model.Status
	Elapsed   time.Duration
	Conflicts int64
	Branches  int64
	response  *cmpb.CpSolverResponse
}

// ErrNoSolution is returned by Value/BoolValue when the result carries no
// usable solution (spec.md §4.3).
var ErrNoSolution = errs.New(errs.KindSolverInternal, "no solution available for value extraction")

// Solve invokes the CP-SAT solver on model m under the given deadline and
// returns its status, elapsed time, and a value extractor bound to the
// response (spec.md §4.3).
func Solve(m *cmpb.CpModelProto, opts Options) (Result, error) {
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(opts.MaxTime),
	}
	if opts.Seed != 0 {
		params.RandomSeed = proto.Int32(int32(opts.Seed))
	}
	if opts.NumWorkers > 0 {
		params.NumSearchWorkers = proto.Int32(opts.NumWorkers)
	}
	if opts.LogProgress {
		params.LogSearchProgress = proto.Bool(true)
	}

	start := time.Now()
	resp, err := cpmodel.SolveCpModelWithParameters(m, params)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, errs.Wrap(errs.KindSolverInternal, "solver invocation failed", err)
	}

	status := fromProtoStatus(resp.GetStatus())
	if opts.LogProgress {
		log.Infof("solve finished: status=%v elapsed=%v conflicts=%d branches=%d",
			status, elapsed, resp.GetNumConflicts(), resp.GetNumBranches())
	}

	return Result{
		Status:    status,
		Elapsed:   elapsed,
		Conflicts: resp.GetNumConflicts(),
		Branches:  resp.GetNumBranches(),
		response:  resp,
	}, nil
}

func fromProtoStatus(s cmpb.CpSolverStatus) model.Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return model.StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return model.StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return model.StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return model.StatusModelInvalid
	default:
		return model.StatusUnknown
	}
}

// Value returns the integer value of a linear argument in the response.
// It fails with ErrNoSolution unless Status.IsSolved() (spec.md §4.3).
func (r Result) Value(la cpmodel.LinearArgument) (int64, error) {
	if !r.Status.IsSolved() {
		return 0, ErrNoSolution
	}
	return cpmodel.SolutionIntegerValue(r.response, la), nil
}

// BoolValue returns the boolean value of a BoolVar in the response. It
// fails with ErrNoSolution unless Status.IsSolved().
func (r Result) BoolValue(b cpmodel.BoolVar) (bool, error) {
	if !r.Status.IsSolved() {
		return false, ErrNoSolution
	}
	return cpmodel.SolutionBooleanValue(r.response, b), nil
}
