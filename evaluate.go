package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/smallmdp/agent"
	"github.com/samuelfneumann/smallmdp/experiment/tracker"
	"github.com/samuelfneumann/smallmdp/store"
	"github.com/samuelfneumann/smallmdp/utils/progressbar"
)

var (
	progress    bool
	returnsFile string
)

// Evaluate evaluates every policy saved in --dir on the configured MDP
func Evaluate() {
	configs, err := store.LoadDir(dir, ext)
	if err != nil {
		log.Fatalf("could not load policies: %v", err)
	}
	if len(configs) == 0 {
		log.Fatalf("no policies with extension %v in %v", ext, dir)
	}

	reporter, reg := newReporter()
	batch := newBatch(loadMDP(), reporter)

	var returns []float64
	for _, c := range configs {
		p, err := agent.Create(c)
		if err != nil {
			log.Fatalf("could not create policy: %v", err)
		}

		if progress {
			batch.Progress = progressbar.New(os.Stderr, 40, runs)
		}

		reporter.EnterScope(c.String())
		result, err := batch.Run(context.Background(), p)
		if err != nil {
			log.Fatalf("could not evaluate %v: %v", c, err)
		}
		reporter.Result("median", result.Quantile(0.5))
		reporter.LeaveScope()

		if batch.Progress != nil {
			batch.Progress.Close()
		}
		warnUnconverged(c, result)
		returns = append(returns, result.Returns...)
	}

	if returnsFile != "" {
		if err := tracker.SaveData(returnsFile, returns); err != nil {
			log.Fatalf("could not save returns: %v", err)
		}
	}
	writeMetrics(reg)
}

func EvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate saved policies by their mean discounted return",
		Run: func(cmd *cobra.Command, args []string) {
			Evaluate()
		},
	}
	addBatchFlags(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "directory of saved policies")
	cmd.Flags().StringVar(&ext, "ext", store.Extension,
		"extension of saved policy files")
	cmd.Flags().BoolVar(&progress, "progress", false,
		"display the progress of rollouts")
	cmd.Flags().StringVar(&returnsFile, "returns", "",
		"file to save the return of every rollout to, in policy order")
	return cmd
}
