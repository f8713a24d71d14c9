// Package handler implements the HTTP layer of the physmap editor.
//
// The browser never mutates the graph directly. Every user gesture (clicking
// a node, dragging, connecting, submitting the inspector form) is posted to
// /api/gestures/{gesture}; the handler forwards it to the editor service and
// answers with the freshly rendered view model:
//
//	{"view": {"canvas": ..., "inspector": ..., "revision": 7}, "notice": "..."}
//
// notice is only present when the change could not be persisted; the change
// itself is still applied in memory.
//
// # Errors
//
// Rejected gestures answer with {error, details} and a status derived from
// the underlying sentinel error: 404 for unknown nodes or edges, 409 for
// gestures that conflict with the current state (self loops, duplicate
// edges, nothing selected) and 400 for malformed input.
//
// # Import and export
//
// GET /api/export/{format} and POST /api/import/{format} move the whole graph
// in json, yaml or toml; html is export only and renders a static snapshot.
package handler
