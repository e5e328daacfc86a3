package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/openshelf/loanengine/entitystore/sqlengine"
	"github.com/openshelf/loanengine/shell/config"
)

// rootOptions holds the global flags shared by all subcommands.
type rootOptions struct {
	SQLitePath  string
	TablePrefix string
	Verbose     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "librarian",
		Short:         "Manage the library catalog, loans, and inventory consistency",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "",
		"use a SQLite database at this path instead of Postgres ("+config.EnvPostgresDSN+")")
	cmd.PersistentFlags().StringVar(&opts.TablePrefix, "table-prefix", "", "prefix for all entity tables")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log SQL statements and timings")

	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newAddAuthorCommand(opts))
	cmd.AddCommand(newAddBookCommand(opts))
	cmd.AddCommand(newRegisterMemberCommand(opts))
	cmd.AddCommand(newCheckoutCommand(opts))
	cmd.AddCommand(newReturnCommand(opts))
	cmd.AddCommand(newCapacityCommand(opts))
	cmd.AddCommand(newAuditCommand(opts))

	return cmd
}

// newLogger builds the process logger. Verbose mode turns on debug level,
// which makes the engine log every SQL statement with its timing.
func (o *rootOptions) newLogger() *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured database and wraps it in an entity store.
// The returned cleanup function closes the underlying connection.
func (o *rootOptions) openStore(ctx context.Context, logger *slog.Logger) (*sqlengine.EntityStore, func(), error) {
	storeOptions := []sqlengine.Option{sqlengine.WithLogger(logger)}
	if o.TablePrefix != "" {
		storeOptions = append(storeOptions, sqlengine.WithTablePrefix(o.TablePrefix))
	}

	if o.SQLitePath != "" {
		db, openErr := config.OpenSQLite(o.SQLitePath)
		if openErr != nil {
			return nil, nil, openErr
		}

		storeOptions = append(storeOptions, sqlengine.WithDialect(sqlengine.DialectSQLite))

		store, buildErr := sqlengine.NewEntityStoreFromSQLDB(db, storeOptions...)
		if buildErr != nil {
			_ = db.Close()
			return nil, nil, buildErr
		}

		return store, func() { _ = db.Close() }, nil
	}

	poolConfig, configErr := config.PostgresPGXPoolConfig()
	if configErr != nil {
		return nil, nil, configErr
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, nil, poolErr
	}

	store, buildErr := sqlengine.NewEntityStoreFromPGXPool(pool, storeOptions...)
	if buildErr != nil {
		pool.Close()
		return nil, nil, buildErr
	}

	return store, pool.Close, nil
}
