package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/export"
	"github.com/cleared-dev/tally/internal/model"
)

// TallyParser reads files written by the CSV export. The export carries no
// sign, so income-only categories are read as income and everything else as
// an expense.
type TallyParser struct {
	Categories *categories.Registry
}

// Format returns the parser name.
func (p *TallyParser) Format() string { return "tally" }

// Parse reads an exported CSV. The header row is skipped.
func (p *TallyParser) Parse(r io.Reader) ([]Row, error) {
	reg := p.Categories
	if reg == nil {
		reg = categories.Default()
	}
	byName := make(map[string]model.CategoryInfo)
	for _, c := range reg.All() {
		byName[strings.ToLower(c.Name)] = c
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(export.Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tally CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseTallyRow(rec, byName)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseTallyRow(rec []string, byName map[string]model.CategoryInfo) (Row, error) {
	date, err := time.Parse(export.DisplayDateFormat, rec[0])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[0], err)
	}

	info, ok := byName[strings.ToLower(rec[2])]
	if !ok {
		return Row{}, fmt.Errorf("%w %q", model.ErrUnknownCategory, rec[2])
	}

	amount, err := decimal.NewFromString(strings.NewReplacer("$", "", ",", "").Replace(rec[3]))
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[3], err)
	}
	if info.Applicability != model.AppliesToIncome {
		amount = amount.Neg()
	}

	return Row{
		Date:        model.DateOf(date),
		Description: rec[1],
		Amount:      amount,
		Category:    info.ID,
	}, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&TallyParser{})
	return r
}
