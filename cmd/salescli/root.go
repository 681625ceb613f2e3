// salescli is a local companion for the sales service: it drives the same
// parse/price/confirm pipeline against a sqlite database, which makes it
// handy for trying out messages and seeding demo catalogs.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/musika/salescore/internal/checkout"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/lifecycle"
	"github.com/musika/salescore/internal/repository"
)

var (
	dbPath  string
	storeID string
	userID  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "salescli",
	Short: "Process dictated sales against a local catalog",
	Long: `salescli runs the sales pipeline against a local sqlite database:
parse a dictated sale message, price it against the catalog, then confirm or
cancel the pending transaction.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "sales.db", "path to the sqlite database")
	rootCmd.PersistentFlags().StringVar(&storeID, "store", "store_demo", "store identifier")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "demo_user", "user identifier")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openEnv wires the full pipeline over the sqlite database at --db.
func openEnv() (*repository.SQLiteCatalog, *checkout.Service, *lifecycle.Manager, func(), error) {
	logger := cliLogger()
	db, err := repository.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	catalog := repository.NewSQLiteCatalog(db, logger)
	store := repository.NewSQLiteTransactionStore(db, logger)
	manager := lifecycle.NewManager(catalog, store, logger)
	sales := checkout.NewService(catalog, manager, common.LoadConfig().Sales, logger)
	cleanup := func() { _ = db.Close() }
	return catalog, sales, manager, cleanup, nil
}
