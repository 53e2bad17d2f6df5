package experiment

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/VividCortex/gohistogram"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/experiment/tracker"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/report"
	"github.com/samuelfneumann/smallmdp/utils/progressbar"
)

// histogramBins is the number of bins used to estimate quantiles of the
// returns of a Batch
const histogramBins = 64

// Batch runs independent rollouts of a policy and aggregates their
// returns
type Batch struct {
	// Runs is the number of rollouts
	Runs int

	// Workers bounds the number of concurrent rollouts. If Workers is
	// not positive, GOMAXPROCS rollouts run concurrently.
	Workers int

	// Seed seeds the generator of rollout i with Seed+i
	Seed uint64

	// Sampler samples the MDP of each rollout, using the generator of
	// the rollout
	Sampler mdp.Sampler

	// Reporter receives the aggregated results. If nil, nothing is
	// reported.
	Reporter report.Reporter

	// Trackers optionally returns the Trackers of rollout i. Trackers
	// are not shared between rollouts.
	Trackers func(run int) []tracker.Tracker

	// Progress is optionally incremented after each rollout
	Progress *progressbar.ProgressBar
}

// Result aggregates the returns of a Batch
type Result struct {
	// Returns holds the return of each rollout, indexed by run
	Returns []float64

	Mean     float64
	Variance float64
	StdErr   float64

	// Unconverged is the total number of value iteration runs over all
	// rollouts which reached their iteration cap before converging
	Unconverged int

	hist *gohistogram.NumericHistogram
}

// Quantile returns an estimate of the q-quantile of the returns
func (r Result) Quantile(q float64) float64 {
	if r.hist == nil {
		return math.NaN()
	}
	return r.hist.Quantile(q)
}

// Run runs the rollouts of a Batch with policy, returning the
// aggregated result. The returned Result does not depend on the order
// in which rollouts complete.
//
// Cancelling ctx stops rollouts from starting, while running rollouts
// complete.
func (b Batch) Run(ctx context.Context, policy agent.Policy) (Result, error) {
	if b.Runs <= 0 {
		return Result{}, fmt.Errorf("run: number of runs must be positive, "+
			"got %d", b.Runs)
	}
	if b.Sampler == nil {
		return Result{}, fmt.Errorf("run: no MDP sampler")
	}

	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	returns := make([]float64, b.Runs)
	unconverged := make([]int, b.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < b.Runs; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(b.Seed + uint64(i)))
			m, err := b.Sampler.Sample(rng)
			if err != nil {
				return fmt.Errorf("could not sample MDP of run %d: %v", i, err)
			}

			var trackers []tracker.Tracker
			if b.Trackers != nil {
				trackers = b.Trackers(i)
			}

			ret, p, err := rollout(policy, m, rng, trackers)
			if err != nil {
				return fmt.Errorf("run %d: %v", i, err)
			}
			returns[i] = ret
			if s, ok := p.(agent.Solver); ok {
				unconverged[i] = s.Unconverged()
			}

			if b.Progress != nil {
				b.Progress.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	result := aggregate(returns)
	for _, n := range unconverged {
		result.Unconverged += n
	}

	r := report.OrNop(b.Reporter)
	r.Result("mean", result.Mean)
	r.Result("stderr", result.StdErr)
	if result.Unconverged > 0 {
		r.Result("warning: unconverged solves", float64(result.Unconverged))
	}

	return result, nil
}

// aggregate reduces the returns of a batch, in run order
func aggregate(returns []float64) Result {
	mean, variance := stat.MeanVariance(returns, nil)
	if len(returns) < 2 {
		variance = 0
	}

	hist := gohistogram.NewHistogram(histogramBins)
	for _, r := range returns {
		hist.Add(r)
	}

	return Result{
		Returns:  returns,
		Mean:     mean,
		Variance: variance,
		StdErr:   math.Sqrt(variance / float64(len(returns))),
		hist:     hist,
	}
}
