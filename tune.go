package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/search"
)

var (
	method        string
	evaluations   int
	randomInitial bool
)

// newMethod returns the optimization method named by --method
func newMethod() optimize.Method {
	switch method {
	case "nelder-mead":
		return &optimize.NelderMead{}
	case "cmaes":
		return &optimize.CmaEsChol{
			Src: rand.NewSource(seed),
		}
	}
	log.Fatalf("unknown method %q", method)
	return nil
}

// Tune searches the parameters of the configured policy which maximize
// its mean return on the configured MDP, then saves the best policy
func Tune() {
	c := readPolicyConfig(policyFile)
	p, err := agent.Create(c)
	if err != nil {
		log.Fatalf("could not create policy: %v", err)
	}
	parameterized, ok := p.(agent.Parameterized)
	if !ok {
		log.Fatalf("policy %v has no parameters to tune", c)
	}

	initial := parameterized.Parameters()
	if randomInitial {
		initial = search.RandomInitial(parameterized,
			rand.New(rand.NewSource(seed)))
	}

	reporter, reg := newReporter()
	batch := newBatch(loadMDP(), reporter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reporter.EnterScope("tune " + c.String())
	result, err := search.MinimizeWithSettings(ctx, parameterized, batch,
		newMethod(), initial, &optimize.Settings{
			FuncEvaluations: evaluations,
		})
	reporter.LeaveScope()
	if err != nil {
		if result.Policy == nil {
			log.Fatalf("could not tune policy: %v", err)
		}
		log.Printf("Warning: search stopped early: %v", err)
	}

	savePolicy(result.Policy.Config())
	writeMetrics(reg)
}

func TuneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Tune the parameters of a policy and save the best policy",
		Run: func(cmd *cobra.Command, args []string) {
			Tune()
		},
	}
	addBatchFlags(cmd)
	cmd.Flags().StringVar(&policyFile, "policy", "",
		"policy configuration file (JSON or YAML)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to save to")
	cmd.Flags().StringVar(&method, "method", "nelder-mead",
		"optimization method, one of nelder-mead or cmaes")
	cmd.Flags().IntVar(&evaluations, "evaluations", 100,
		"maximum number of parameter vectors evaluated")
	cmd.Flags().BoolVar(&randomInitial, "random-init", false,
		"draw the initial parameters from the policy's prior")
	cmd.MarkFlagRequired("policy")
	return cmd
}
