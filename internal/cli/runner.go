package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/config"
	"github.com/Makepad-fr/tasks/internal/logging"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/store/jsonstore"
	"github.com/Makepad-fr/tasks/internal/store/memstore"
	"github.com/Makepad-fr/tasks/internal/store/sqlitestore"
	"github.com/Makepad-fr/tasks/internal/ui"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks bad invocations. Run maps it to ExitUsage.
type usageError struct {
	err  error
	hint string
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs tags argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err, hint: "Hint: run `" + cmd.CommandPath() + " --help` for usage"}
		}
		return nil
	}
}

// Run executes the command line and returns an exit code (0 ok, 1 error,
// 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	var ue *usageError
	if errors.As(err, &ue) {
		if ue.hint != "" {
			ui.Hint(stderr, ue.hint)
		}
		return ExitUsage
	}
	return ExitError
}

// withApp loads config and state, runs fn, and closes the store.
func withApp(opts *RootOptions, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.Apply(config.Overrides{DataDir: opts.DataDir, Store: opts.Store, LogLevel: opts.LogLevel}); err != nil {
			return &usageError{err: err}
		}
		ui.SetTheme(cfg.Theme)

		logger := logging.New(cmd.ErrOrStderr(), logging.Options{
			Level:     cfg.LogLevel,
			Format:    cfg.LogFormat,
			Timestamp: cfg.LogTimestamp,
		})
		kv, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := kv.Close(); err != nil {
				logger.Warn("close store", "err", err)
			}
		}()
		logger.Debug("store opened", "backend", cfg.Store, "dir", cfg.DataDir)

		a := app.New(kv, app.Options{Logger: logger, DefaultProjectName: cfg.DefaultProject})
		if res := a.Load(); !res.OK() {
			logger.Warn("state could not be saved; changes may be lost", "err", res.Err)
		}
		return fn(cmd, a, args)
	}
}

func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return sqlitestore.Open(cfg.SQLitePath())
	default:
		return jsonstore.New(cfg.DataDir), nil
	}
}

// saved turns a failed save into an error so the command exits non-zero.
func saved(a *app.App) error {
	if res := a.LastSave(); !res.OK() {
		return fmt.Errorf("not saved: %w", res.Err)
	}
	return nil
}

// parseIndex converts a 1-based index argument, checking it against n.
func parseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("not a number: %s", arg)
	}
	if i < 1 || i > n {
		return 0, &usageError{
			err:  fmt.Errorf("index out of range: have %d, got %d", n, i),
			hint: "Hint: run `tasks ls` to see valid indexes",
		}
	}
	return i - 1, nil
}

// inputErr reports invalid todo input as a usage error.
func inputErr(err error) error {
	if errors.Is(err, app.ErrEmptyTitle) ||
		errors.Is(err, app.ErrInvalidPriority) ||
		errors.Is(err, app.ErrInvalidDueDate) ||
		errors.Is(err, app.ErrEmptyName) {
		return &usageError{err: err}
	}
	return err
}
