package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"physmap/internal/editor"
	"physmap/internal/handler"
	"physmap/internal/hub"
	"physmap/internal/service"
	"physmap/internal/watcher"
)

func serveCmd(a *app) *cobra.Command {
	var addr, watchPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Watch.ImportPath = watchPath
			}
			return a.serve()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "HTTP listen address")
	cmd.Flags().StringVar(&watchPath, "watch", "", "Graph file to re-import whenever it changes")
	return cmd
}

func (a *app) serve() error {
	logger := a.logger
	logger.Info("Starting physmap server", zap.String("version", version), zap.String("config", a.configPath))

	adapter, repo, err := a.openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	graph, err := adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	logger.Info("Graph loaded",
		zap.String("key", adapter.Key()),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)))

	eventBus := service.NewEventBus()

	sseHub := hub.New(logger)
	go sseHub.Run(ctx.Done())
	sseHub.Forward(eventBus, ctx.Done())

	editorSvc := service.NewEditorService(editor.New(graph), adapter, eventBus, logger)

	if path := a.cfg.Watch.ImportPath; path != "" {
		reloader := watcher.NewReloader(path, editorSvc, logger)
		if _, err := os.Stat(path); err == nil {
			_ = reloader.Reload(ctx)
		}
		go func() {
			if err := reloader.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Import watcher stopped", zap.Error(err))
			}
		}()
	}

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return fmt.Errorf("embedded web content: %w", err)
	}

	router := handler.NewRouter(handler.NewEditorHandler(editorSvc, logger), sseHub, webContent, logger)

	server := &http.Server{
		Addr:        a.cfg.Server.Addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", a.cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if editorSvc.Pending() {
		logger.Warn("Exiting with changes that were never saved")
	}

	logger.Info("Server stopped")
	return nil
}
