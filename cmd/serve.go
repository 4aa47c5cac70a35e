package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chisel-ui/chisel/internal/server"
	"github.com/chisel-ui/chisel/internal/store"
	"github.com/chisel-ui/chisel/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the editor backend server",
	Long: `Start the HTTP server backing the visual editor: component discovery
with file watching, structure extraction, property application, structural
preview, sandbox rendering, and a websocket channel for live reload.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "host to bind to")
	serveCmd.Flags().Int("port", 0, "port to bind to")
	serveCmd.Flags().StringSlice("scan", nil, "directories to scan for components")
	serveCmd.Flags().Bool("no-store", false, "disable the revision store")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("components.scan_paths", serveCmd.Flags().Lookup("scan"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, catalog, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var revisions *store.Store
	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		if dir := filepath.Dir(cfg.Store.Path); dir != "." && cfg.Store.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		revisions, err = store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer revisions.Close()
	}

	srv := server.New(cfg, logger, catalog, revisions)

	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return err
	}
	fw.AddFilter(watcher.ComponentFileFilter)
	fw.AddHandler(func(events []watcher.ChangeEvent) {
		for _, event := range events {
			switch event.Type {
			case watcher.EventTypeDeleted, watcher.EventTypeRenamed:
				srv.Scanner().Forget(event.Path)
			default:
				if err := srv.Scanner().ScanFile(event.Path); err != nil {
					logger.Warn(ctx, err, "rescan failed", "path", event.Path)
				}
			}
		}
	})
	fw.AddErrorHandler(func(err error) {
		logger.Warn(ctx, err, "file watch error")
	})
	for _, path := range cfg.Components.ScanPaths {
		if err := fw.AddPath(path); err != nil {
			logger.Warn(ctx, err, "watching path failed", "path", path)
		}
	}
	fw.Start(ctx)

	return srv.Start(ctx)
}
