package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/tally/internal/activity"
	"github.com/cleared-dev/tally/internal/analytics"
	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/log"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/store"
)

// project is an opened tally directory with its stores wired up.
type project struct {
	dir      string
	cfg      *config.Config
	logger   *log.Logger
	backend  store.Backend
	txns     *store.TransactionStore
	budgets  *store.BudgetStore
	engine   *analytics.Engine
	registry *categories.Registry
}

// openProject loads dir's tally.yaml, applies TALLY_* overrides from the
// shell and dir/.env, and opens the configured backend. Diagnostics go to
// logOut.
func openProject(dir string, logOut io.Writer) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no %s in %s (run 'tally init' first)", config.FileName, absDir)
	}
	if err != nil {
		return nil, err
	}
	environ, err := projectEnv(absDir)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}

	level, _ := log.ParseLevel(cfg.Log.Level) // checked by Validate
	logger := log.New(log.Config{Level: level, Component: "tally", Writer: logOut})

	backend, err := store.OpenBackend(cfg.BackendConfig(absDir))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", absDir)

	storeLog := store.WithLogger(logger.WithComponent("store"))
	txns := store.NewTransactionStore(backend, storeLog)
	budgets := store.NewBudgetStore(backend, storeLog)
	registry := categories.Default()

	engine := analytics.NewEngine(txns, budgets,
		analytics.WithRegistry(registry),
		analytics.WithSeriesMonths(cfg.Analytics.SeriesMonths),
		analytics.WithRecentCount(cfg.Analytics.RecentCount),
		analytics.WithLogger(logger.WithComponent("analytics")),
	)

	return &project{
		dir:      absDir,
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		txns:     txns,
		budgets:  budgets,
		engine:   engine,
		registry: registry,
	}, nil
}

// projectEnv returns the variables of dir/.env overlaid by the process
// environment, so a variable set in the shell wins.
func projectEnv(dir string) (map[string]string, error) {
	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	if errors.Is(err, fs.ErrNotExist) {
		vars = make(map[string]string)
	} else if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

func (p *project) Close() error {
	return p.backend.Close()
}

// record appends a mutation to the activity log. A failed append is logged
// and does not fail the command, since the change itself is already stored.
func (p *project) record(action, kind, id, details string) {
	err := activity.Append(p.dir, activity.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Kind:      kind,
		RecordID:  id,
		Details:   details,
	})
	if err != nil {
		p.logger.Warn("activity log append failed", "action", action, "id", id, "error", err)
	}
}

func transactionDetails(t model.Transaction) string {
	return fmt.Sprintf("%s %s %s %s %s", t.Date, t.Type, t.Amount.StringFixed(2), t.Category, t.Description)
}

func budgetDetails(b model.Budget) string {
	return fmt.Sprintf("%s %s %s", b.Month, b.Category, b.Amount.StringFixed(2))
}
