package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/engine"
	"github.com/roach88/knifehit/internal/store"
	"github.com/roach88/knifehit/internal/tuning"
)

// loadTuning returns the tuning tables named by --tuning, or the defaults
// when no file is set.
func loadTuning(opts *RootOptions) (engine.Tuning, error) {
	load := tuning.Default
	if opts.Tuning != "" {
		load = func() (engine.Tuning, error) { return tuning.Load(opts.Tuning) }
	}
	t, err := load()
	if err != nil {
		return engine.Tuning{}, WrapExitError(ExitCommandError, "failed to load tuning", err)
	}
	return t, nil
}

// openStore opens the database named by --db, creating it if needed.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// openExistingStore is openStore for read-only commands: a missing file is
// a command error rather than a fresh empty database.
func openExistingStore(opts *RootOptions) (*store.Store, error) {
	if _, err := os.Stat(opts.Database); errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}
	return openStore(opts)
}

// closeStore closes st, logging rather than returning the error.
func closeStore(st *store.Store, logger *slog.Logger) {
	if err := st.Close(); err != nil {
		logger.Error("error closing database", "error", err)
	}
}

// loadEconomy builds an economy over the stored profile. Fields that fail
// to decode fall back to their defaults and are logged.
func loadEconomy(ctx context.Context, st *store.Store, logger *slog.Logger) (*economy.Economy, error) {
	rec, err := st.LoadProfile(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load profile", err)
	}
	p, fieldErrs := economy.DecodeProfile(rec)
	for _, fe := range fieldErrs {
		logger.Warn("profile field reset to default", "key", fe.Key, "value", fe.Value, "error", fe.Err)
	}
	return economy.New(p), nil
}

// saveEconomy writes the profile back after a command changed it.
func saveEconomy(ctx context.Context, st *store.Store, econ *economy.Economy) error {
	if err := st.SaveProfile(ctx, econ.Record()); err != nil {
		return WrapExitError(ExitCommandError, "failed to save profile", err)
	}
	return nil
}
