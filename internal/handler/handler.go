package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"physmap/internal/domain"
	"physmap/internal/editor"
	"physmap/internal/service"
	"physmap/internal/view"
)

// maxBodyBytes caps gesture and import request bodies
const maxBodyBytes = 4 << 20

// EditorHandler handles gesture, view and import/export requests
type EditorHandler struct {
	svc    *service.EditorService
	logger *zap.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc *service.EditorService, logger *zap.Logger) *EditorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorHandler{svc: svc, logger: logger}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ViewResponse is returned by the view endpoint and every gesture
type ViewResponse struct {
	View   view.Page `json:"view"`
	Notice string    `json:"notice,omitempty"`
}

// NodeRef names a node in a gesture body
type NodeRef struct {
	ID string `json:"id"`
}

// EdgeRef names an edge in a gesture body
type EdgeRef struct {
	ID string `json:"id"`
}

// ConnectRequest is the body of the connect gesture
type ConnectRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// AddNodeRequest carries the visible viewport the node is centred in
type AddNodeRequest struct {
	Viewport service.Viewport `json:"viewport"`
}

// FormFieldRequest is one keystroke-level edit in the inspector form
type FormFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GetView returns the current view model
func (h *EditorHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, ViewResponse{View: view.Render(h.svc.View())}, http.StatusOK)
}

// NodeClick selects a node
func (h *EditorHandler) NodeClick(w http.ResponseWriter, r *http.Request) {
	var req NodeRef
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "node-click", func(ctx context.Context) (service.Result, error) {
		return h.svc.NodeClick(ctx, req.ID)
	})
}

// PaneClick clears the selection
func (h *EditorHandler) PaneClick(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "pane-click", h.svc.PaneClick)
}

// AddNode creates a node in the middle of the posted viewport
func (h *EditorHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "add-node", func(ctx context.Context) (service.Result, error) {
		return h.svc.AddNode(ctx, req.Viewport)
	})
}

// Edit switches the inspector into edit mode
func (h *EditorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "edit", h.svc.Edit)
}

// FormField updates one field of the edit buffer
func (h *EditorHandler) FormField(w http.ResponseWriter, r *http.Request) {
	var req FormFieldRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "form-field", func(ctx context.Context) (service.Result, error) {
		return h.svc.FormField(ctx, domain.Field(req.Field), req.Value)
	})
}

// Save writes the edit buffer into the selected node
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "save", h.svc.Save)
}

// Cancel discards the edit buffer
func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "cancel", h.svc.Cancel)
}

// Delete removes the selected node and its edges
func (h *EditorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "delete", h.svc.Delete)
}

// Connect adds an edge between two nodes
func (h *EditorHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "connect", func(ctx context.Context) (service.Result, error) {
		return h.svc.Connect(ctx, req.Source, req.Target)
	})
}

// EdgeDoubleClick removes an edge
func (h *EditorHandler) EdgeDoubleClick(w http.ResponseWriter, r *http.Request) {
	var req EdgeRef
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, "edge-double-click", func(ctx context.Context) (service.Result, error) {
		return h.svc.EdgeDoubleClick(ctx, req.ID)
	})
}

// NodesChange applies a batch of canvas node deltas
func (h *EditorHandler) NodesChange(w http.ResponseWriter, r *http.Request) {
	var changes []editor.NodeChange
	if !h.decode(w, r, &changes) {
		return
	}
	h.respond(w, r, "nodes-change", func(ctx context.Context) (service.Result, error) {
		return h.svc.NodesChange(ctx, changes)
	})
}

// EdgesChange applies a batch of canvas edge deltas
func (h *EditorHandler) EdgesChange(w http.ResponseWriter, r *http.Request) {
	var changes []editor.EdgeChange
	if !h.decode(w, r, &changes) {
		return
	}
	h.respond(w, r, "edges-change", func(ctx context.Context) (service.Result, error) {
		return h.svc.EdgesChange(ctx, changes)
	})
}

// Helper methods

func (h *EditorHandler) respond(w http.ResponseWriter, r *http.Request, gesture string, run func(context.Context) (service.Result, error)) {
	res, err := run(r.Context())
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Gesture failed", zap.String("gesture", gesture), zap.Error(err))
		} else {
			h.logger.Debug("Gesture rejected", zap.String("gesture", gesture), zap.Error(err))
		}
		h.writeError(w, "Gesture rejected", err.Error(), status)
		return
	}

	h.writeJSON(w, ViewResponse{
		View:   view.Render(res.Snapshot),
		Notice: res.Notice,
	}, http.StatusOK)
}

func (h *EditorHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps sentinel errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound), errors.Is(err, domain.ErrEdgeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSelfLoop),
		errors.Is(err, domain.ErrDuplicateEdge),
		errors.Is(err, editor.ErrNoSelection):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrEmptyLabel),
		errors.Is(err, domain.ErrEmptyFormula),
		errors.Is(err, domain.ErrDanglingEdge),
		errors.Is(err, domain.ErrDuplicateNode),
		errors.Is(err, domain.ErrDuplicateEdgeID),
		errors.Is(err, editor.ErrInvalidField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *EditorHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON", zap.Error(err))
	}
}

func (h *EditorHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

// formatParam reads the {format} route parameter
func formatParam(r *http.Request) string {
	return chi.URLParam(r, "format")
}
