package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smallmdp/utils/matutils"
	"github.com/samuelfneumann/smallmdp/valuetable"
)

// Solve prints the optimal action values of the configured MDP
func Solve() {
	m, err := loadMDP().Create(rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("could not create MDP: %v", err)
	}
	validateMDP(m)

	q, result := valuetable.OptimalQ(m)
	if !result.Converged {
		fmt.Fprintf(os.Stderr, "Warning: value iteration did not converge "+
			"after %d iterations\n", result.Iterations)
	}

	fmt.Printf("Optimal Q (%d iterations):\n", result.Iterations)
	fmt.Println(matutils.Format(q.Matrix()))
}

func SolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the optimal action values of an MDP",
		Run: func(cmd *cobra.Command, args []string) {
			Solve()
		},
	}
	cmd.Flags().StringVar(&mdpFile, "mdp", "", "MDP configuration file "+
		"(JSON or YAML)")
	cmd.MarkFlagRequired("mdp")
	return cmd
}
