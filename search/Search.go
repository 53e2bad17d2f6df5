// Package search turns the average rollout return of a parameterized
// policy into an objective over its parameter vector, and minimizes it
// with the optimizers of gonum/optimize
package search

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/experiment"
	"github.com/samuelfneumann/smallmdp/report"
)

// Objective returns the negated mean return of batch when evaluated with
// a clone of p whose parameters are set to the argument vector. Every
// evaluation runs the same seeded rollouts. Parameter vectors which are
// rejected by the policy, or whose evaluation fails or is not finite,
// have an objective of +Inf.
func Objective(ctx context.Context, p agent.Parameterized,
	batch experiment.Batch) func([]float64) float64 {
	batch.Reporter = nil
	return func(x []float64) float64 {
		clone, ok := p.Clone().(agent.Parameterized)
		if !ok {
			return math.Inf(1)
		}
		if err := clone.SetParameters(x); err != nil {
			return math.Inf(1)
		}

		result, err := batch.Run(ctx, clone)
		if err != nil || math.IsNaN(result.Mean) {
			return math.Inf(1)
		}
		return -result.Mean
	}
}

// Result is the result of a search
type Result struct {
	// Policy is a clone of the searched policy with the best parameters
	Policy agent.Parameterized

	// Parameters is the best parameter vector found
	Parameters []float64

	// Score is the mean return of the best parameters
	Score float64

	// Evaluations is the number of objective evaluations
	Evaluations int

	Status optimize.Status
}

// NumParameters returns the number of searched parameters
func (r Result) NumParameters() int {
	return len(r.Parameters)
}

// Minimize minimizes the Objective of p from the initial parameter
// vector using method with gonum's default settings. If method is nil,
// gonum chooses the method.
func Minimize(ctx context.Context, p agent.Parameterized,
	batch experiment.Batch, method optimize.Method,
	initial []float64) (Result, error) {
	return MinimizeWithSettings(ctx, p, batch, method, initial, nil)
}

// MinimizeWithSettings is like Minimize but uses the argument settings.
// The search stops when ctx is cancelled. The best parameters, best
// score and number of parameters are reported to batch.Reporter.
func MinimizeWithSettings(ctx context.Context, p agent.Parameterized,
	batch experiment.Batch, method optimize.Method, initial []float64,
	settings *optimize.Settings) (Result, error) {
	if len(initial) != len(p.ParameterNames()) {
		return Result{}, fmt.Errorf("minimize: expected %d initial "+
			"parameters but got %d", len(p.ParameterNames()), len(initial))
	}

	if settings == nil {
		settings = &optimize.Settings{}
	}
	s := *settings
	s.Recorder = contextRecorder{ctx: ctx, next: settings.Recorder}

	problem := optimize.Problem{Func: Objective(ctx, p, batch)}
	opt, err := optimize.Minimize(problem, initial, &s, method)
	if opt == nil {
		return Result{}, fmt.Errorf("minimize: %w", err)
	}
	if err != nil && ctx.Err() == nil {
		return Result{}, fmt.Errorf("minimize: %v", err)
	}

	best, ok := p.Clone().(agent.Parameterized)
	if !ok {
		return Result{}, fmt.Errorf("minimize: clone of %v is not "+
			"parameterized", p.Config())
	}
	if setErr := best.SetParameters(opt.X); setErr != nil {
		return Result{}, fmt.Errorf("minimize: %v", setErr)
	}

	result := Result{
		Policy:      best,
		Parameters:  append([]float64(nil), opt.X...),
		Score:       -opt.F,
		Evaluations: opt.Stats.FuncEvaluations,
		Status:      opt.Status,
	}

	r := report.OrNop(batch.Reporter)
	r.Result("best score", result.Score)
	r.Result("parameters", float64(result.NumParameters()))
	for i, name := range best.ParameterNames() {
		r.Result(name, result.Parameters[i])
	}

	if err != nil {
		return result, fmt.Errorf("minimize: %w", err)
	}
	return result, nil
}

// RandomInitial draws an initial parameter vector from the parameter
// prior of p
func RandomInitial(p agent.Parameterized, rng *rand.Rand) []float64 {
	return p.ParameterSampler().Sample(rng)
}

// contextRecorder stops an optimization when its context is cancelled
type contextRecorder struct {
	ctx  context.Context
	next optimize.Recorder
}

func (c contextRecorder) Init() error {
	if c.next != nil {
		return c.next.Init()
	}
	return nil
}

func (c contextRecorder) Record(loc *optimize.Location,
	op optimize.Operation, stats *optimize.Stats) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	if c.next != nil {
		return c.next.Record(loc, op, stats)
	}
	return nil
}
