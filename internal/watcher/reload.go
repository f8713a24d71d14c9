package watcher

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"physmap/internal/codec"
	"physmap/internal/domain"
	"physmap/internal/service"
)

// GraphImporter replaces the edited graph
type GraphImporter interface {
	Import(ctx context.Context, g *domain.Graph, source string) (service.Result, error)
	Notify(level, message string)
}

// Reloader imports a graph file into the editor
type Reloader struct {
	path     string
	importer GraphImporter
	logger   *zap.Logger
}

// NewReloader creates a reloader for path; the format follows the extension
func NewReloader(path string, importer GraphImporter, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{path: path, importer: importer, logger: logger}
}

// Reload parses the file and replaces the graph. Failures leave the current
// graph untouched and are broadcast as notices.
func (r *Reloader) Reload(ctx context.Context) error {
	if err := r.reload(ctx); err != nil {
		r.logger.Warn("Failed to reload graph file", zap.String("path", r.path), zap.Error(err))
		r.importer.Notify("warning", err.Error())
		return err
	}
	return nil
}

func (r *Reloader) reload(ctx context.Context) error {
	imp, err := codec.ImporterFor(codec.FormatFromPath(r.path))
	if err != nil {
		return fmt.Errorf("reload %s: %w", r.path, err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", r.path, err)
	}
	defer f.Close()

	g, err := imp.Parse(f)
	if err != nil {
		return fmt.Errorf("reload %s: %w", r.path, err)
	}

	res, err := r.importer.Import(ctx, g, "file:"+r.path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", r.path, err)
	}

	r.logger.Info("Graph file reloaded",
		zap.String("path", r.path),
		zap.Int("nodes", len(res.Snapshot.Graph.Nodes)))
	return nil
}

// Watch reloads the file every time it changes until ctx is cancelled
func (r *Reloader) Watch(ctx context.Context) error {
	w := New(r.path, func() {
		_ = r.Reload(ctx)
	}, r.logger)
	return w.Watch(ctx)
}
