package main

import (
	"github.com/spf13/cobra"
)

func SaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a policy configuration for evaluation",
		Run: func(cmd *cobra.Command, args []string) {
			savePolicy(readPolicyConfig(policyFile))
		},
	}
	cmd.Flags().StringVar(&policyFile, "policy", "",
		"policy configuration file (JSON or YAML)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to save to")
	cmd.MarkFlagRequired("policy")
	return cmd
}
