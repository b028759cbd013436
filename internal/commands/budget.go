package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/analytics"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
	"github.com/cleared-dev/tally/internal/store"
)

func newBudgetCommand(dir *string) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Manage monthly category budgets",
	}
	budgetCmd.AddCommand(
		newBudgetSetCommand(dir),
		newBudgetListCommand(dir),
		newBudgetEditCommand(dir),
		newBudgetDeleteCommand(dir),
		newBudgetStatusCommand(dir),
	)
	return budgetCmd
}

// monthOrCurrent returns month, or the current month key when it is empty.
func monthOrCurrent(month string, now time.Time) (string, error) {
	if month == "" {
		return period.CurrentMonth(now), nil
	}
	if _, _, err := period.ParseMonth(month); err != nil {
		return "", err
	}
	return month, nil
}

func newBudgetSetCommand(dir *string) *cobra.Command {
	var category, amount, month string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the budget for a category and month, replacing any existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBudgetSet(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, category, amount, month, time.Now())
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category id")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "budgeted amount")
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runBudgetSet(out, errOut io.Writer, dir, category, amount, month string, now time.Time) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	cat, err := p.registry.Parse(category)
	if err != nil {
		return err
	}
	amt, err := parseAmount(amount)
	if err != nil {
		return err
	}
	if month == "" {
		month = period.CurrentMonth(now)
	}

	draft := model.BudgetDraft{Category: cat, Amount: amt, Month: month}
	if err := draft.Validate(p.registry); err != nil {
		return err
	}

	b, err := p.budgets.Add(draft)
	if err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	p.record("set", "budget", b.ID, budgetDetails(b))
	fmt.Fprintf(out, "Budget for %s in %s set to %s (%s)\n", b.Category, b.Month, export.FormatCurrency(b.Amount), b.ID)
	return nil
}

func newBudgetListCommand(dir *string) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the budgets of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthOrCurrent(month, time.Now())
			if err != nil {
				return err
			}
			return runBudgetList(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, m)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")

	return cmd
}

func runBudgetList(out, errOut io.Writer, dir, month string) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	budgets := p.budgets.ByMonth(month)
	if len(budgets) == 0 {
		fmt.Fprintf(out, "No budgets for %s.\n", month)
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tMONTH\tCATEGORY\tAMOUNT")
	for _, b := range budgets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Month, categoryLabel(p.registry, b.Category), export.FormatCurrency(b.Amount))
	}
	return tw.Flush()
}

func newBudgetEditCommand(dir *string) *cobra.Command {
	var category, amount, month string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			current, err := p.budgets.Get(args[0])
			if err != nil {
				return err
			}

			var patch model.BudgetPatch
			if cmd.Flags().Changed("category") {
				cat, err := p.registry.Parse(category)
				if err != nil {
					return err
				}
				patch.Category = &cat
			}
			if cmd.Flags().Changed("amount") {
				amt, err := parseAmount(amount)
				if err != nil {
					return err
				}
				patch.Amount = &amt
			}
			if cmd.Flags().Changed("month") {
				patch.Month = &month
			}
			if patch == (model.BudgetPatch{}) {
				return errors.New("nothing to change: pass at least one of --category, --amount, --month")
			}

			return runBudgetEdit(cmd.OutOrStdout(), p, current, patch)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category id")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "budgeted amount")
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM")

	return cmd
}

func runBudgetEdit(out io.Writer, p *project, current model.Budget, patch model.BudgetPatch) error {
	if err := patch.Apply(current).Draft().Validate(p.registry); err != nil {
		return err
	}

	b, err := p.budgets.Update(current.ID, patch)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	p.record("edit", "budget", b.ID, budgetDetails(b))
	fmt.Fprintf(out, "Updated %s: %s in %s is %s\n", b.ID, b.Category, b.Month, export.FormatCurrency(b.Amount))
	return nil
}

func newBudgetDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			removed, err := p.budgets.Delete(args[0])
			if err != nil {
				return fmt.Errorf("deleting budget: %w", err)
			}
			if !removed {
				return fmt.Errorf("budget %s: %w", args[0], store.ErrNotFound)
			}
			p.record("delete", "budget", args[0], "")
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newBudgetStatusCommand(dir *string) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare budgets with actual spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := monthOrCurrent(month, time.Now())
			if err != nil {
				return err
			}
			return runBudgetStatus(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, m)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")

	return cmd
}

func runBudgetStatus(out, errOut io.Writer, dir, month string) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	statuses := p.engine.BudgetStatuses(month)
	label, err := period.MonthLabel(month)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Budgets for %s\n\n", label)
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No budgets set.")
		return nil
	}

	if err := writeBudgetStatuses(out, p, statuses); err != nil {
		return err
	}

	sum := analytics.SummarizeBudgets(statuses)
	fmt.Fprintf(out, "\n%d budgets, %d over  Budgeted: %s  Spent: %s (%d%%)\n",
		sum.Count, sum.OverBudget, money(sum.Budgeted), money(sum.Spent), sum.Percentage)
	return nil
}

func writeBudgetStatuses(out io.Writer, p *project, statuses []model.BudgetStatus) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "CATEGORY\tBUDGETED\tSPENT\tREMAINING\tUSED\t")
	for _, s := range statuses {
		flag := ""
		if s.IsOverBudget {
			flag = "OVER"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %d%%\t%s\n",
			categoryLabel(p.registry, s.Category), money(s.Budgeted), money(s.Spent), money(s.Remaining),
			progressBar(s.Percentage), s.Percentage, flag)
	}
	return tw.Flush()
}
