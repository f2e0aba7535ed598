package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether tracking is initialized and which state is current",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := engine()
		if err != nil {
			return fail(err)
		}
		res, err := tr.Status()
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			if !res.IsInitialized {
				fmt.Println("Not initialized. Run 'rewind init' first.")
				return
			}
			fmt.Println("Initialized: ", res.InitializedAt)
			fmt.Println("History dir: ", res.HistoryDirectory)
			fmt.Println("Total states:", res.TotalStates)
			if res.CurrentState == 0 {
				fmt.Println("Current:      baseline")
			} else {
				fmt.Println("Current:      state", res.CurrentState)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
