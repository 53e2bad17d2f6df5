// Package formula implements policies whose action value update is a
// closed-form formula of a few features of each observed transition,
// rather than a fixed Bellman-style update. The formulas are either
// weighted sums of powers of the features, with weights and powers
// exposed as tunable parameters, or arbitrary expression trees.
//
// Every policy computes the features
//
//	QValue:    Q(s, a), the current action value
//	Reward:    the observed or expected reward
//	NextValue: max_a' Q(s', a') of the observed or expected next state
//	Count:     the number of observations of (s, a), this one included
//
// and replaces Q(s, a) with the value of the formula. Updates which
// produce a NaN or infinite value are rejected, keeping the previous
// action value.
package formula

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/utils/floatutils"
)

// Feature indices
const (
	QValue = iota
	Reward
	NextValue
	Count

	NumFeatures
)

// FeatureNames are the names of the features, by index
var FeatureNames = [NumFeatures]string{"QValue", "Reward", "NextValue",
	"Count"}

// Formula is the weighted power sum
//
//	Σ_i Weights[i] · feature_i^Powers[i]
//
// using the convention 0^p = 0 for every power p. Terms with a weight
// of zero are skipped.
type Formula struct {
	Weights [NumFeatures]float64
	Powers  [NumFeatures]float64
}

// Identity returns the Formula whose value is the current action
// value, so that updates leave action values unchanged
func Identity() Formula {
	var f Formula
	f.Weights[QValue] = 1
	f.Powers[QValue] = 1
	return f
}

// Evaluate computes the value of the formula
func (f Formula) Evaluate(features [NumFeatures]float64) float64 {
	var value float64
	for i, w := range f.Weights {
		if w == 0 {
			continue
		}
		value += w * pow(features[i], f.Powers[i])
	}
	return value
}

// pow returns x^p with 0^p = 0
func pow(x, p float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Pow(x, p)
}

// ParameterNames returns the names of the weights followed by the names
// of the powers
func ParameterNames() []string {
	names := make([]string, 0, 2*NumFeatures)
	for _, name := range FeatureNames {
		names = append(names, "Weight("+name+")")
	}
	for _, name := range FeatureNames {
		names = append(names, "Power("+name+")")
	}
	return names
}

// Parameters returns the weights followed by the powers
func (f Formula) Parameters() []float64 {
	params := make([]float64, 0, 2*NumFeatures)
	params = append(params, f.Weights[:]...)
	return append(params, f.Powers[:]...)
}

// FromParameters returns the Formula with the weights and powers of a
// parameter vector as returned by Parameters
func FromParameters(params []float64) (Formula, error) {
	if len(params) != 2*NumFeatures {
		return Formula{}, fmt.Errorf("fromParameters: expected %d "+
			"parameters but got %d", 2*NumFeatures, len(params))
	}

	var f Formula
	for i, p := range params {
		if !floatutils.IsFinite(p) {
			return Formula{}, fmt.Errorf("fromParameters: parameter %d "+
				"is not finite", i)
		}
	}
	copy(f.Weights[:], params[:NumFeatures])
	copy(f.Powers[:], params[NumFeatures:])

	return f, nil
}

// Sampler returns the prior over formula parameters, with weights drawn
// from N(0, 1) and powers from U[0, 2]
func Sampler() agent.ParameterSampler {
	return agent.ParameterSamplerFunc(func(rng *rand.Rand) []float64 {
		weights := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
		powers := distuv.Uniform{Min: 0, Max: 2, Src: rng}

		params := make([]float64, 2*NumFeatures)
		for i := 0; i < NumFeatures; i++ {
			params[i] = weights.Rand()
		}
		for i := NumFeatures; i < len(params); i++ {
			params[i] = powers.Rand()
		}
		return params
	})
}

func (f Formula) String() string {
	return fmt.Sprintf("w=%v,p=%v", f.Weights, f.Powers)
}
