package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/progress"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <state-number>",
	Short: "Restore the project to a recorded state (0 is the baseline)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stateNumber, err := strconv.Atoi(args[0])
		if err != nil {
			return fail(fmt.Errorf("state number must be an integer, got %q", args[0]))
		}

		tr, err := engine()
		if err != nil {
			return fail(err)
		}

		var spin *progress.Spinner
		if !jsonOut {
			spin = progress.NewSpinner(fmt.Sprintf("restoring state %d", stateNumber))
		}
		res, err := tr.Restore(stateNumber)
		if spin != nil {
			spin.Finish()
		}
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			fmt.Println(res.Message)
			if res.StateInfo != nil {
				fmt.Printf("Files restored: %d\n", res.StateInfo.FilesRestored)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
