package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/store"
)

func newInitCommand() *cobra.Command {
	var backend string
	var force bool
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, backend, force, git)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", string(store.BackendFile), "storage backend (file or sqlite)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing tally.yaml")
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository and commit the project config")

	return cmd
}

func runInit(out io.Writer, dir, backend string, force, git bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Opening the backend creates the data directory or migrates the database.
	b, err := store.OpenBackend(cfg.BackendConfig(dir))
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	if err := b.Close(); err != nil {
		return fmt.Errorf("closing storage: %w", err)
	}

	gitignore := "data/\nimport/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized tally project at %s (%s storage)\n", dir, cfg.Storage.Backend)

	if git {
		hash, err := initRepo(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Committed project config (%s)\n", hash)
	}
	return nil
}

// initRepo versions tally.yaml and .gitignore. The data directory and .env
// stay out of the repository.
func initRepo(dir string) (string, error) {
	if !gitops.Available() {
		return "", errors.New("--git requires git on PATH")
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
	}
	return gitops.Commit(dir, "init: tally project", gitops.DefaultAuthor, config.FileName, ".gitignore")
}
