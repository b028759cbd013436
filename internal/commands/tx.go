package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/analytics"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/period"
	"github.com/cleared-dev/tally/internal/store"
)

func newTxCommand(dir *string) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction", "transactions"},
		Short:   "Record and review income and expenses",
	}
	txCmd.AddCommand(
		newTxAddCommand(dir),
		newTxListCommand(dir),
		newTxEditCommand(dir),
		newTxDeleteCommand(dir),
		newTxExportCommand(dir),
		newTxImportCommand(dir),
	)
	return txCmd
}

type txFlags struct {
	amount      string
	description string
	date        string
	category    string
	txType      string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, always positive")
	cmd.Flags().StringVarP(&f.description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&f.date, "date", "today", "date as YYYY-MM-DD, today or yesterday")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category id (see 'tally categories')")
	cmd.Flags().StringVarP(&f.txType, "type", "t", string(model.TypeExpense), "income or expense")
}

func newTxAddCommand(dir *string) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTxAdd(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, f, time.Now())
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runTxAdd(out, errOut io.Writer, dir string, f txFlags, now time.Time) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	amount, err := parseAmount(f.amount)
	if err != nil {
		return err
	}
	cat, err := p.registry.Parse(f.category)
	if err != nil {
		return err
	}
	date, err := parseDateFlag(f.date, now)
	if err != nil {
		return err
	}

	draft := model.TransactionDraft{
		Amount:      amount,
		Description: strings.TrimSpace(f.description),
		Date:        date,
		Category:    cat,
		Type:        model.TransactionType(strings.ToLower(f.txType)),
	}
	if err := draft.Validate(p.registry); err != nil {
		return err
	}

	t, err := p.txns.Add(draft)
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	p.record("add", "transaction", t.ID, transactionDetails(t))
	fmt.Fprintf(out, "Added %s %s %q on %s (%s)\n", t.Type, export.FormatCurrency(t.Amount), t.Description, t.Date, t.ID)
	return nil
}

func newTxListCommand(dir *string) *cobra.Command {
	var periodName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			return runTxList(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, per)
		},
	}

	cmd.Flags().StringVarP(&periodName, "period", "p", string(period.All), "this-week, this-month, last-month or all")

	return cmd
}

func runTxList(out, errOut io.Writer, dir string, per period.Period) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	txns := p.engine.Transactions(per)
	if len(txns) == 0 {
		fmt.Fprintln(out, "No transactions.")
		return nil
	}
	if err := writeTransactions(out, p.registry, txns); err != nil {
		return err
	}

	totals := analytics.ComputeTotals(txns)
	fmt.Fprintf(out, "\n%d transactions  Income: %s  Expenses: %s  Net: %s\n",
		len(txns), money(totals.Income), money(totals.Expenses), money(totals.Net))
	return nil
}

func newTxEditCommand(dir *string) *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTxEdit(cmd, *dir, args[0], f, time.Now())
		},
	}

	f.register(cmd)

	return cmd
}

func runTxEdit(cmd *cobra.Command, dir, id string, f txFlags, now time.Time) error {
	p, err := openProject(dir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer p.Close()

	current, err := p.txns.Get(id)
	if err != nil {
		return err
	}

	var patch model.TransactionPatch
	changed := cmd.Flags().Changed
	if changed("amount") {
		amount, err := parseAmount(f.amount)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if changed("desc") {
		desc := strings.TrimSpace(f.description)
		patch.Description = &desc
	}
	if changed("date") {
		date, err := parseDateFlag(f.date, now)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if changed("category") {
		cat, err := p.registry.Parse(f.category)
		if err != nil {
			return err
		}
		patch.Category = &cat
	}
	if changed("type") {
		typ := model.TransactionType(strings.ToLower(f.txType))
		patch.Type = &typ
	}
	if patch == (model.TransactionPatch{}) {
		return errors.New("nothing to change: pass at least one of --amount, --desc, --date, --category, --type")
	}

	if err := patch.Apply(current).Draft().Validate(p.registry); err != nil {
		return err
	}

	t, err := p.txns.Update(id, patch)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	p.record("edit", "transaction", t.ID, transactionDetails(t))
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s %s %q on %s\n", t.ID, t.Type, export.FormatCurrency(t.Amount), t.Description, t.Date)
	return nil
}

func newTxDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTxDelete(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, args[0])
		},
	}
}

func runTxDelete(out, errOut io.Writer, dir, id string) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	removed, err := p.txns.Delete(id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if !removed {
		return fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	p.record("delete", "transaction", id, "")

	fmt.Fprintf(out, "Deleted %s\n", id)
	return nil
}

func newTxExportCommand(dir *string) *cobra.Command {
	var periodName string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			per, err := period.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			return runTxExport(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, per, output, time.Now())
		},
	}

	cmd.Flags().StringVarP(&periodName, "period", "p", string(period.All), "this-week, this-month, last-month or all")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default transactions-YYYY-MM-DD.csv)")

	return cmd
}

func runTxExport(out, errOut io.Writer, dir string, per period.Period, output string, now time.Time) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	txns := p.engine.Transactions(per)

	if output == "-" {
		if err := export.TransactionsWith(out, txns, p.registry); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Fprintln(out)
		return nil
	}

	if output == "" {
		output = export.FileName(now)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := export.TransactionsWith(f, txns, p.registry); err != nil {
		f.Close()
		return fmt.Errorf("exporting: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}

	fmt.Fprintf(out, "Exported %d transactions to %s\n", len(txns), output)
	return nil
}
