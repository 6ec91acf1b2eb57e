// Package cmd provides CLI commands for the alphasim application.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alphasim",
	Short: "alphasim - Monte Carlo study of Cronbach's alpha",
	Long: `alphasim estimates, by Monte Carlo simulation, how often Cronbach's alpha
computed on discretized Likert-type items exceeds the 0.70 acceptability
threshold across a grid of item counts, inter-item correlations, and
sample sizes.`,
}

func Execute() error {
	return rootCmd.Execute()
}
