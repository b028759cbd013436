package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/period"
)

func newDashboardCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show this month's totals, spending, recent activity and budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir)
		},
	}
}

func runDashboard(out, errOut io.Writer, dir string) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	d := p.engine.Dashboard()
	label, err := period.MonthLabel(d.Month)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n\n", label)
	fmt.Fprintf(out, "Income:    %s\n", money(d.TotalIncome))
	fmt.Fprintf(out, "Expenses:  %s\n", money(d.TotalExpenses))
	fmt.Fprintf(out, "Net:       %s\n", money(d.Net))

	fmt.Fprintln(out, "\nBy category")
	if len(d.Categories) == 0 {
		fmt.Fprintln(out, "  nothing this month")
	} else {
		tw := newTable(out)
		for _, c := range d.Categories {
			fmt.Fprintf(tw, "  %s\t%s\t%d%%\n", categoryLabel(p.registry, c.Category), money(c.Amount), c.Percentage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nRecent")
	if len(d.Recent) == 0 {
		fmt.Fprintln(out, "  no transactions yet")
	} else {
		tw := newTable(out)
		for _, t := range d.Recent {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", t.Date, t.Description, categoryLabel(p.registry, t.Category), signed(t))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(d.Budgets) > 0 {
		fmt.Fprintln(out, "\nBudgets")
		if err := writeBudgetStatuses(out, p, d.Budgets); err != nil {
			return err
		}
	}
	return nil
}
