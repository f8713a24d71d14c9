package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter wires the editor API, the event stream and the static page
func NewRouter(h *EditorHandler, events http.Handler, static fs.FS, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(Recover(logger), CORS, Logger(logger))

	r.Route("/api", func(api chi.Router) {
		api.Get("/view", h.GetView)

		api.Route("/gestures", func(g chi.Router) {
			g.Post("/node-click", h.NodeClick)
			g.Post("/pane-click", h.PaneClick)
			g.Post("/add-node", h.AddNode)
			g.Post("/edit", h.Edit)
			g.Post("/form-field", h.FormField)
			g.Post("/save", h.Save)
			g.Post("/cancel", h.Cancel)
			g.Post("/delete", h.Delete)
			g.Post("/connect", h.Connect)
			g.Post("/edge-double-click", h.EdgeDoubleClick)
			g.Post("/nodes-change", h.NodesChange)
			g.Post("/edges-change", h.EdgesChange)
		})

		api.Get("/export/{format}", h.Export)
		api.Post("/import/{format}", h.Import)
	})

	if events != nil {
		r.Method(http.MethodGet, "/events", events)
	}
	if static != nil {
		r.Handle("/*", http.FileServer(http.FS(static)))
	}

	return r
}
