package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/config"
)

var cleanupKeep int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete the oldest recorded states, keeping the most recent ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep := cleanupKeep
		if !cmd.Flags().Changed("keep") {
			keep = config.KeepLastN()
		}

		tr, err := engine()
		if err != nil {
			return fail(err)
		}
		res, err := tr.Cleanup(keep)
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			fmt.Println(res.Message)
		})
	},
}

func init() {
	cleanupCmd.Flags().IntVarP(&cleanupKeep, "keep", "k", 10, "number of most recent states to keep")
	rootCmd.AddCommand(cleanupCmd)
}
