// Package importer turns bank and tally CSV files into transaction drafts.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Row is one parsed CSV line. Amount is signed: negative means money out.
type Row struct {
	Date        model.Date
	Description string
	Amount      decimal.Decimal
	Category    model.Category // empty when the source has none
}

// Parser converts a CSV file into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Dir is the project subdirectory scanned for CSVs; processed files move to
// ProcessedDir.
const (
	Dir          = "import"
	ProcessedDir = "import/processed"
)

// Scan returns CSV files in <projectDir>/import/.
func Scan(projectDir string) ([]FileInfo, error) {
	dir := filepath.Join(projectDir, Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(projectDir, fileName string) error {
	src := filepath.Join(projectDir, Dir, fileName)
	dstDir := filepath.Join(projectDir, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Drafts converts rows to transaction drafts. Negative amounts become
// expenses and positive ones income; rows without a category get fallback.
// Zero-amount rows are dropped.
func Drafts(rows []Row, fallback model.Category) []model.TransactionDraft {
	drafts := make([]model.TransactionDraft, 0, len(rows))
	for _, r := range rows {
		if r.Amount.IsZero() {
			continue
		}
		typ := model.TypeIncome
		if r.Amount.IsNegative() {
			typ = model.TypeExpense
		}
		cat := r.Category
		if cat == "" {
			cat = fallback
		}
		drafts = append(drafts, model.TransactionDraft{
			Amount:      r.Amount.Abs(),
			Description: strings.TrimSpace(r.Description),
			Date:        r.Date,
			Category:    cat,
			Type:        typ,
		})
	}
	return drafts
}

// Dedupe drops drafts that match an existing transaction, or an earlier draft,
// on date, type, amount and description. It returns the survivors and the
// number dropped.
func Dedupe(drafts []model.TransactionDraft, existing []model.Transaction) ([]model.TransactionDraft, int) {
	seen := make(map[string]bool, len(existing)+len(drafts))
	for _, t := range existing {
		seen[key(t.Draft())] = true
	}

	var fresh []model.TransactionDraft
	skipped := 0
	for _, d := range drafts {
		k := key(d)
		if seen[k] {
			skipped++
			continue
		}
		seen[k] = true
		fresh = append(fresh, d)
	}
	return fresh, skipped
}

func key(d model.TransactionDraft) string {
	return strings.Join([]string{
		d.Date.String(),
		string(d.Type),
		d.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(d.Description)),
	}, "\x00")
}
