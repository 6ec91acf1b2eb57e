// This file implements the grid command, which lists the simulation
// conditions without running anything.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adalundhe/alphasim/core/config"
)

var gridConfigPath string

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "List the simulation conditions in execution order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(gridConfigPath)
		if err != nil {
			return err
		}
		grid, err := cfg.Grid()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for idx, cond := range grid.All() {
			fmt.Fprintf(out, "%3d  %s\n", idx, cond.String())
		}
		fmt.Fprintf(out, "%d conditions, %d replications each\n", grid.Len(), cfg.Replications)
		return nil
	},
}

func init() {
	gridCmd.Flags().StringVarP(&gridConfigPath, "config", "c", "", "path to a yaml study configuration")
	rootCmd.AddCommand(gridCmd)
}
