package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"physmap/internal/codec"
	"physmap/internal/view"
)

// Export writes the whole graph in the requested format
func (h *EditorHandler) Export(w http.ResponseWriter, r *http.Request) {
	exp, err := codec.ExporterFor(formatParam(r))
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusNotFound)
		return
	}

	// Render fully before writing so a failure can still produce an error body
	var buf bytes.Buffer
	if err := exp.Export(h.svc.View().Graph, &buf); err != nil {
		h.logger.Error("Failed to export graph", zap.String("format", exp.Format()), zap.Error(err))
		h.writeError(w, "Failed to export graph", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=graph.%s", exp.Format()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("Failed to write export", zap.Error(err))
	}
}

// Import replaces the graph with the uploaded document
func (h *EditorHandler) Import(w http.ResponseWriter, r *http.Request) {
	imp, err := codec.ImporterFor(formatParam(r))
	if err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	g, err := imp.Parse(r.Body)
	if err != nil {
		h.writeError(w, "Invalid document", err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Import(r.Context(), g, "upload:"+imp.Format())
	if err != nil {
		h.writeError(w, "Import rejected", err.Error(), statusFor(err))
		return
	}

	h.logger.Info("Graph imported",
		zap.String("format", imp.Format()),
		zap.Int("nodes", len(res.Snapshot.Graph.Nodes)),
		zap.Int("edges", len(res.Snapshot.Graph.Edges)))

	h.writeJSON(w, ViewResponse{
		View:   view.Render(res.Snapshot),
		Notice: res.Notice,
	}, http.StatusOK)
}
