package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/model"
)

func newCategoriesCommand() *cobra.Command {
	var txType string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.OutOrStdout(), categories.Default(), model.TransactionType(strings.ToLower(txType)))
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", "", "only categories usable for income or expense")

	return cmd
}

func runCategories(out io.Writer, reg *categories.Registry, t model.TransactionType) error {
	var infos []model.CategoryInfo
	switch {
	case t == "":
		infos = reg.All()
	case t.Valid():
		infos = reg.ForType(t)
	default:
		return fmt.Errorf("%w: %q", model.ErrInvalidType, t)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tUSED FOR")
	for _, c := range infos {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", c.ID, c.Icon, c.Name, c.Applicability)
	}
	return tw.Flush()
}
