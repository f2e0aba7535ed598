package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <state-number>",
	Short: "Show full details of one recorded state",
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
		res, err := tr.StateDetails(stateNumber)
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			info := res.StateInfo
			fmt.Printf("State %d", info.StateNumber)
			if info.IsCurrent {
				fmt.Print(" (current)")
			}
			fmt.Println()
			if info.Timestamp != "" {
				fmt.Println("Timestamp:  ", info.Timestamp)
			}
			if info.Description != "" {
				fmt.Println("Description:", info.Description)
			}
			if info.Prompt != "" {
				fmt.Println("Prompt:     ", info.Prompt)
			}
			if len(info.FilesChanged) > 0 {
				fmt.Printf("Files changed (%d):\n", info.FileCount)
				for _, f := range info.FilesChanged {
					fmt.Println("  ", f)
				}
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
