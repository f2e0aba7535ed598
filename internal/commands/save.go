package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/progress"
	"github.com/keshon/rewind/internal/tracker"
)

var (
	savePrompt      string
	saveDescription string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record files that differ from the baseline as a new state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := engine()
		if err != nil {
			return fail(err)
		}

		var spin *progress.Spinner
		if !jsonOut {
			spin = progress.NewSpinner("scanning for changes")
		}
		res, err := tr.Save(savePrompt, saveDescription)
		if spin != nil {
			spin.Finish()
		}
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			fmt.Println(res.Message)
			if res.Status == tracker.StatusSuccess {
				for _, f := range res.ChangedFiles {
					fmt.Println("  ", f)
				}
			}
		})
	},
}

func init() {
	saveCmd.Flags().StringVarP(&savePrompt, "prompt", "p", "", "prompt or request that led to these changes")
	saveCmd.Flags().StringVarP(&saveDescription, "description", "d", "", "short description of the changes")
	rootCmd.AddCommand(saveCmd)
}
