package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/progress"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the baseline snapshot and start tracking",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := engine()
		if err != nil {
			return fail(err)
		}

		var spin *progress.Spinner
		if !jsonOut {
			spin = progress.NewSpinner("creating baseline snapshot")
		}
		res, err := tr.Initialize()
		if spin != nil {
			spin.Finish()
		}
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			fmt.Println(res.Message)
			fmt.Println("Backup:", res.BackupLocation)
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
