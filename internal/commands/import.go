package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
)

func newTxImportCommand(dir *string) *cobra.Command {
	var format, category string

	parsers := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import transactions from bank or tally CSV files",
		Long: `Import transactions from CSV files.

With no file arguments, every CSV in the project's import/ directory is read
and then moved to import/processed/. Rows matching a stored transaction on
date, type, amount and description are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := parsers.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(parsers.Formats(), ", "))
			}
			return runTxImport(cmd.OutOrStdout(), cmd.ErrOrStderr(), *dir, parser, category, args)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "chase", "file format ("+strings.Join(parsers.Formats(), ", ")+")")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOthers), "category for rows that carry none")

	return cmd
}

func runTxImport(out, errOut io.Writer, dir string, parser importer.Parser, category string, files []string) error {
	p, err := openProject(dir, errOut)
	if err != nil {
		return err
	}
	defer p.Close()

	fallback, err := p.registry.Parse(category)
	if err != nil {
		return err
	}

	fromInbox := len(files) == 0
	if fromInbox {
		found, err := importer.Scan(p.dir)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Fprintf(out, "No CSV files in %s.\n", filepath.Join(p.dir, importer.Dir))
			return nil
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}

	var imported, skipped int
	for _, path := range files {
		n, dup, err := importFile(p, parser, fallback, path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		imported += n
		skipped += dup

		if fromInbox {
			if err := importer.MarkProcessed(p.dir, filepath.Base(path)); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s: %d imported, %d skipped\n", filepath.Base(path), n, dup)
	}

	if len(files) > 1 {
		fmt.Fprintf(out, "Total: %d imported, %d skipped\n", imported, skipped)
	}
	return nil
}

// importFile parses and validates the whole file, then stores it in one write.
func importFile(p *project, parser importer.Parser, fallback model.Category, path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	rows, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return 0, 0, err
	}

	drafts := importer.Drafts(rows, fallback)
	for i, d := range drafts {
		if err := d.Validate(p.registry); err != nil {
			return 0, 0, fmt.Errorf("row %q on %s (#%d): %w", d.Description, d.Date, i+1, err)
		}
	}

	fresh, skipped := importer.Dedupe(drafts, p.txns.All())
	added, err := p.txns.AddAll(fresh)
	if err != nil {
		return 0, 0, fmt.Errorf("saving transactions: %w", err)
	}
	for _, t := range added {
		p.record("import", "transaction", t.ID, transactionDetails(t))
	}
	p.logger.Debug("file imported", "path", path, "format", parser.Format(), "imported", len(fresh), "skipped", skipped)
	return len(fresh), skipped, nil
}
