package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/chitieu/internal/cli"
	"github.com/Veraticus/chitieu/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Other commands migrate automatically; this command is useful to check the
schema version or prepare a database ahead of time.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting database migration",
		"database", cfg.Database.Path,
		"status_only", status)

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status {
		state := cli.FormatSuccess("up to date")
		if current < storage.ExpectedSchemaVersion {
			state = cli.FormatWarning(fmt.Sprintf("%d migration(s) pending", storage.ExpectedSchemaVersion-current))
		}
		fmt.Fprintln(out, cli.RenderBox("Database Migration Status", fmt.Sprintf(
			"Database: %s\nCurrent version: %d\nLatest version: %d\n%s",
			cfg.Database.Path, current, storage.ExpectedSchemaVersion, state)))
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database at schema version %d (was %d)", storage.ExpectedSchemaVersion, current)))
	return nil
}
