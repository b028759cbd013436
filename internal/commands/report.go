package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/period"
)

func newReportCommand(dir *string) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports",
	}
	reportCmd.AddCommand(
		newReportMonthlyCommand(dir),
		newReportCategoriesCommand(dir),
	)
	return reportCmd
}

func newReportMonthlyCommand(dir *string) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Total per month over the trailing months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportMonthly(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, months)
		},
	}

	cmd.Flags().IntVarP(&months, "months", "n", 0, "number of months (default from tally.yaml)")

	return cmd
}

func runReportMonthly(out, errOut io.Writer, dir string, months int) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	switch {
	case months < 0:
		return fmt.Errorf("--months must be at least 1, got %d", months)
	case months == 0:
		months = p.engine.SeriesMonths()
	}
	series := p.engine.MonthlyExpenses(months)

	peak := decimal.Zero
	total := decimal.Zero
	for _, m := range series {
		peak = decimal.Max(peak, m.Amount)
		total = total.Add(m.Amount)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "MONTH\tAMOUNT\t")
	for _, m := range series {
		label, err := period.MonthLabel(m.Month)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", label, money(m.Amount), bar(m.Amount, peak))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(series) > 0 {
		avg := total.Div(decimal.NewFromInt(int64(len(series))))
		fmt.Fprintf(out, "\nTotal: %s  Average: %s\n", money(total), money(avg))
	}
	return nil
}

// bar scales amount against peak into at most 30 cells.
func bar(amount, peak decimal.Decimal) string {
	if !peak.IsPositive() {
		return ""
	}
	n := amount.Mul(decimal.NewFromInt(30)).Div(peak).Round(0).IntPart()
	return strings.Repeat("#", int(n))
}

func newReportCategoriesCommand(dir *string) *cobra.Command {
	var periodName string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Breakdown by category for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			return runReportCategories(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, per)
		},
	}

	cmd.Flags().StringVarP(&periodName, "period", "p", string(period.ThisMonth), "this-week, this-month, last-month or all")

	return cmd
}

func runReportCategories(out, errOut io.Writer, dir string, per period.Period) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	rows := p.engine.CategoryExpenses(per)
	if len(rows) == 0 {
		fmt.Fprintf(out, "No transactions for %s.\n", per)
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\n", categoryLabel(p.registry, r.Category), money(r.Amount), r.Percentage)
	}
	return tw.Flush()
}
