// Command migrate applies migrations/ to the configured database with the Atlas CLI.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"car-rental-platform/internal/pkg/config"
	"car-rental-platform/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files and atlas.sum")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrate(ctx, cfg.DB, *dir, *atlasBin, *dryRun); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, cfg config.DBConfig, dir, atlasBin string, dryRun bool) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return errs.Wrap(err, "failed to prepare migration directory")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasBin)
	if err != nil {
		return errs.Wrap(err, "failed to initialize atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.BuildDSN(),
		DryRun: dryRun,
	})
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}

	for _, f := range res.Applied {
		slog.Info("Applied migration", "file", f.Name, "version", f.Version)
	}
	slog.Info("Database is up to date", "current", res.Current, "target", res.Target, "dry_run", dryRun)
	return nil
}
