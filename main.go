// Command smallmdp solves, evaluates and tunes policies on finite MDPs
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/smallmdp/agent"
	_ "github.com/samuelfneumann/smallmdp/agent/tabular/formula"
	_ "github.com/samuelfneumann/smallmdp/agent/tabular/modelbased"
	_ "github.com/samuelfneumann/smallmdp/agent/tabular/optimal"
	_ "github.com/samuelfneumann/smallmdp/agent/tabular/qlearning"
	_ "github.com/samuelfneumann/smallmdp/agent/tabular/random"
	"github.com/samuelfneumann/smallmdp/experiment"
	"github.com/samuelfneumann/smallmdp/mdp"
	"github.com/samuelfneumann/smallmdp/mdp/mdpconfig"
	"github.com/samuelfneumann/smallmdp/report"
	"github.com/samuelfneumann/smallmdp/store"
)

var (
	mdpFile     string
	policyFile  string
	dir         string
	ext         string
	runs        int
	workers     int
	seed        uint64
	metricsFile string
)

func main() {
	log.SetFlags(0)

	root := &cobra.Command{
		Use:   "smallmdp",
		Short: "Solve, evaluate and tune policies on finite MDPs",
	}
	root.PersistentFlags().Uint64Var(&seed, "seed", 1,
		"seed of the random number generators")
	root.PersistentFlags().StringVar(&metricsFile, "metrics", "",
		"file to write results to in the Prometheus text format")

	root.AddCommand(SolveCommand(), EvaluateCommand(), SaveCommand(),
		TuneCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// addBatchFlags adds the flags which configure rollouts
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mdpFile, "mdp", "", "MDP configuration file "+
		"(JSON or YAML)")
	cmd.Flags().IntVar(&runs, "runs", 100, "number of rollouts per policy")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"maximum number of concurrent rollouts, 0 for GOMAXPROCS")
	cmd.MarkFlagRequired("mdp")
}

// loadMDP loads the MDP configuration given by --mdp
func loadMDP() mdpconfig.Config {
	c, err := mdpconfig.Load(mdpFile)
	if err != nil {
		log.Fatalf("could not load MDP: %v", err)
	}
	return c
}

// newBatch returns the Batch of rollouts configured by the flags
func newBatch(c mdpconfig.Config, reporter report.Reporter) experiment.Batch {
	sampler, err := c.Sampler(rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("could not create MDP: %v", err)
	}
	return experiment.Batch{
		Runs:     runs,
		Workers:  workers,
		Seed:     seed,
		Sampler:  sampler,
		Reporter: reporter,
	}
}

// newReporter returns a Reporter which logs to stdout and, if --metrics
// is set, records results for writeMetrics
func newReporter() (report.Reporter, *prometheus.Registry) {
	logger := report.NewLog(log.New(os.Stdout, "", 0))
	if metricsFile == "" {
		return logger, nil
	}

	reg := prometheus.NewRegistry()
	p, err := report.NewPrometheus(reg)
	if err != nil {
		log.Fatalf("could not create metrics: %v", err)
	}
	return report.Multi{logger, p}, reg
}

// writeMetrics writes the gathered results to --metrics
func writeMetrics(reg *prometheus.Registry) {
	if reg == nil {
		return
	}
	if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
		log.Fatalf("could not write metrics: %v", err)
	}
}

// readPolicyConfig reads a typed policy configuration from a JSON or
// YAML file
func readPolicyConfig(path string) agent.Config {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("could not read policy: %v", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v interface{}
		if err := yaml.Unmarshal(data, &v); err != nil {
			log.Fatalf("could not read policy %v: %v", path, err)
		}
		if data, err = json.Marshal(v); err != nil {
			log.Fatalf("could not read policy %v: %v", path, err)
		}
	}

	c, err := agent.UnmarshalConfig(data)
	if err != nil {
		log.Fatalf("could not read policy %v: %v", path, err)
	}
	return c
}

// warnUnconverged warns if value iteration did not converge
func warnUnconverged(c agent.Config, result experiment.Result) {
	if result.Unconverged > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %v: %d value iteration runs "+
			"reached their iteration cap\n", c, result.Unconverged)
	}
}

// validateMDP validates an MDP before it is solved
func validateMDP(m mdp.MDP) {
	if err := mdp.Validate(m); err != nil {
		log.Fatalf("invalid MDP: %v", err)
	}
}

// savePolicy saves c to --dir
func savePolicy(c agent.Config) {
	path, err := store.Save(dir, c)
	if err != nil {
		log.Fatalf("could not save policy: %v", err)
	}
	fmt.Println("Saved", path)
}
