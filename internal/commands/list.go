package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/tracker"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded states",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := engine()
		if err != nil {
			return fail(err)
		}
		res, err := tr.ListStates()
		if err != nil {
			return fail(err)
		}

		return emit(res, tr.Root, func() {
			if res.Status == tracker.StatusInfo {
				fmt.Println(res.Message)
				return
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATE\tCURRENT\tTIMESTAMP\tFILES\tDESCRIPTION")
			for _, st := range res.States {
				marker := ""
				if st.IsCurrent {
					marker = "*"
				}
				desc := st.Description
				if desc == "" {
					desc = st.Prompt
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
					st.StateNumber, marker, st.Timestamp, st.FilesChanged, desc)
			}
			w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
