package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/activity"
)

func newLogCommand(dir *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes to transactions and budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, 0 for all")

	return cmd
}

func runLog(out, errOut io.Writer, dir string, limit int) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	entries, err := activity.Read(p.dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity yet.")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "TIME\tACTION\tKIND\tID\tDETAILS")
	for _, e := range activity.Last(entries, limit) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Action, e.Kind, e.RecordID, e.Details)
	}
	return tw.Flush()
}
