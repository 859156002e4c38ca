// Command migrate applies the SQL migrations in ./migrations with the atlas CLI.
//
//	go run ./cmd/migrate            # apply pending migrations
//	go run ./cmd/migrate -status    # show applied / pending
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"shortlet-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	var (
		dir        = flag.String("dir", "file://migrations", "migration directory URL")
		atlasBin   = flag.String("atlas", "atlas", "path to the atlas binary")
		statusOnly = flag.Bool("status", false, "print migration status and exit")
		dryRun     = flag.Bool("dry-run", false, "print pending statements without applying")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := atlasexec.NewClient(".", *atlasBin)
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}
	url := cfg.DB.BuildDSN()

	if *statusOnly {
		status, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    url,
			DirURL: *dir,
		})
		if err != nil {
			slog.Error("failed to read migration status", "error", err)
			os.Exit(1)
		}
		slog.Info("migration status",
			"status", status.Status,
			"current", status.Current,
			"next", status.Next,
			"applied", len(status.Applied),
			"pending", len(status.Pending))
		return
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    url,
		DirURL: *dir,
		DryRun: *dryRun,
	})
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	for _, f := range res.Applied {
		slog.Info("applied migration", "version", f.Version, "description", f.Description)
	}
	slog.Info("migrations done", "current", res.Current, "target", res.Target, "applied", len(res.Applied), "dry_run", *dryRun)
}
