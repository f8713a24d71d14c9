// Package service implements the interaction layer of the physmap editor.
//
// EditorService turns user gestures (node click, pane click, add, save,
// connect, edge double-click, canvas drags) into editor.Store calls. Each
// gesture runs under one lock, so gestures apply in arrival order and never
// interleave.
//
// # Commits
//
// Persistence is an explicit step. After a gesture, if the store revision
// differs from the last committed revision, the whole graph is saved. A
// failed save keeps the in-memory state, returns a notice with the gesture
// result, and publishes an EventNotice. The next gesture tries again because
// the revision is still uncommitted.
//
// # Event System
//
// Gestures publish events on an EventBus. The server forwards them to the
// SSE hub so open pages refresh.
package service
