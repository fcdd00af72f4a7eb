package root

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/config"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/logger"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/storage"
	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/ui"
)

// app is everything a command needs once the service is up.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	dbPath string
	svc    *engine.Service
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.Storage.Path = flagDB
	}
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, string, func(), error) {
	path, err := storage.ResolveDBPath(cfg.Storage.Path)
	if err != nil {
		return nil, "", nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, "", nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, path, cleanup, nil
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	resolver, err := daykey.New(cfg.Day.UTCOffsetHours, cfg.Day.RolloverHour)
	if err != nil {
		return nil, nil, err
	}
	db, path, closeDB, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(db, resolver, log, engine.Options{RepairLifetime: cfg.Lifetime.Repair})
	if err := svc.Init(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	cleanup := func() {
		svc.Teardown()
		closeDB()
		log.Sync()
	}
	return &app{cfg: cfg, log: log, dbPath: path, svc: svc}, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, cleanup, nil
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the resolved database path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, err := storage.ResolveDBPath(cfg.Storage.Path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "docs",
		Short: "List stored documents and their schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			docs, err := svc.Store().Documents(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconInfo, "Documents"))
			for _, d := range docs {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n",
					ui.Key.Render(d.Key),
					ui.Muted.Render(fmt.Sprintf("v%d", d.Version)),
					ui.Muted.Render(d.UpdatedAt.Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	})
	return cmd
}
