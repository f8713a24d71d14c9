package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"physmap/internal/domain"
	"physmap/internal/editor"
)

// GraphSaver persists the full graph
type GraphSaver interface {
	Save(ctx context.Context, g *domain.Graph) error
}

// Result is the outcome of a gesture: the state after it ran, plus a notice
// when the commit failed
type Result struct {
	Snapshot editor.Snapshot
	Notice   string
}

// EditorService dispatches gestures to the editor store and commits the
// graph after each one that changed it
type EditorService struct {
	mu        sync.Mutex
	store     *editor.Store
	saver     GraphSaver
	eventBus  *EventBus
	logger    *zap.Logger
	committed uint64
}

// NewEditorService creates a service over store. The store's current state
// counts as committed.
func NewEditorService(store *editor.Store, saver GraphSaver, eventBus *EventBus, logger *zap.Logger) *EditorService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		store:     store,
		saver:     saver,
		eventBus:  eventBus,
		logger:    logger,
		committed: store.Revision(),
	}
}

// View returns the current state without changing it
func (s *EditorService) View() editor.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// NodeClick selects a node
func (s *EditorService) NodeClick(ctx context.Context, id string) (Result, error) {
	return s.dispatch(ctx, "node_click", func(st *editor.Store) error {
		return st.SelectNode(id)
	})
}

// PaneClick clears the selection
func (s *EditorService) PaneClick(ctx context.Context) (Result, error) {
	return s.dispatch(ctx, "pane_click", func(st *editor.Store) error {
		st.ClearSelection()
		return nil
	})
}

// AddNode adds a node in the middle of the viewport
func (s *EditorService) AddNode(ctx context.Context, vp Viewport) (Result, error) {
	return s.dispatch(ctx, "add_node", func(st *editor.Store) error {
		id := st.AddNode(vp.Center())
		s.logger.Debug("Node added", zap.String("node_id", id))
		return nil
	})
}

// Edit switches the selected node to edit mode
func (s *EditorService) Edit(ctx context.Context) (Result, error) {
	return s.dispatch(ctx, "edit", func(st *editor.Store) error {
		return st.BeginEdit()
	})
}

// FormField changes one field of the form buffer
func (s *EditorService) FormField(ctx context.Context, field domain.Field, value string) (Result, error) {
	return s.dispatch(ctx, "form_field", func(st *editor.Store) error {
		return st.UpdateFormField(field, value)
	})
}

// Save commits the form buffer to the selected node
func (s *EditorService) Save(ctx context.Context) (Result, error) {
	return s.dispatch(ctx, "save", func(st *editor.Store) error {
		return st.SaveForm()
	})
}

// Cancel discards the form buffer
func (s *EditorService) Cancel(ctx context.Context) (Result, error) {
	return s.dispatch(ctx, "cancel", func(st *editor.Store) error {
		st.CancelEdit()
		return nil
	})
}

// Delete removes the selected node and its edges
func (s *EditorService) Delete(ctx context.Context) (Result, error) {
	return s.dispatch(ctx, "delete", func(st *editor.Store) error {
		st.DeleteSelected()
		return nil
	})
}

// Connect adds an edge between two nodes
func (s *EditorService) Connect(ctx context.Context, source, target string) (Result, error) {
	return s.dispatch(ctx, "connect", func(st *editor.Store) error {
		_, err := st.Connect(source, target)
		return err
	})
}

// EdgeDoubleClick removes an edge
func (s *EditorService) EdgeDoubleClick(ctx context.Context, id string) (Result, error) {
	return s.dispatch(ctx, "edge_double_click", func(st *editor.Store) error {
		st.DeleteEdge(id)
		return nil
	})
}

// NodesChange applies node deltas from the canvas
func (s *EditorService) NodesChange(ctx context.Context, changes []editor.NodeChange) (Result, error) {
	return s.dispatch(ctx, "nodes_change", func(st *editor.Store) error {
		st.ApplyNodeChanges(changes)
		return nil
	})
}

// EdgesChange applies edge deltas from the canvas
func (s *EditorService) EdgesChange(ctx context.Context, changes []editor.EdgeChange) (Result, error) {
	return s.dispatch(ctx, "edges_change", func(st *editor.Store) error {
		st.ApplyEdgeChanges(changes)
		return nil
	})
}

// Import replaces the whole graph. Graphs with repeated ids or with edges
// pointing at missing nodes are rejected and leave the current graph untouched.
func (s *EditorService) Import(ctx context.Context, g *domain.Graph, source string) (Result, error) {
	if err := g.CheckUniqueIDs(); err != nil {
		return Result{Snapshot: s.View()}, fmt.Errorf("import: %w", err)
	}
	if dangling := g.DanglingEdges(); len(dangling) > 0 {
		return Result{Snapshot: s.View()}, fmt.Errorf("import: %w: %s", domain.ErrDanglingEdge, dangling[0].ID)
	}

	res, err := s.dispatch(ctx, "import", func(st *editor.Store) error {
		st.ReplaceGraph(g)
		return nil
	})
	if err == nil {
		s.eventBus.Publish(Event{
			Type:    EventGraphReplaced,
			Payload: map[string]any{"source": source, "nodes": len(res.Snapshot.Graph.Nodes)},
		})
	}
	return res, err
}

// Reset replaces the graph with the seed graph
func (s *EditorService) Reset(ctx context.Context) (Result, error) {
	return s.Import(ctx, domain.SeedGraph(), "seed")
}

// dispatch runs one gesture under the lock and commits if the graph changed
func (s *EditorService) dispatch(ctx context.Context, gesture string, apply func(*editor.Store) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := apply(s.store); err != nil {
		return Result{Snapshot: s.store.Snapshot()}, fmt.Errorf("%s: %w", gesture, err)
	}

	res := Result{Notice: s.commit(ctx)}
	res.Snapshot = s.store.Snapshot()

	s.eventBus.Publish(Event{
		Type:    EventViewChanged,
		Payload: map[string]any{"gesture": gesture, "revision": res.Snapshot.Revision},
	})
	return res, nil
}

// commit saves the graph when its revision is ahead of the last save. It
// returns a user-facing notice on failure and "" otherwise.
func (s *EditorService) commit(ctx context.Context) string {
	rev := s.store.Revision()
	if rev == s.committed || s.saver == nil {
		return ""
	}

	if err := s.saver.Save(ctx, s.store.Graph()); err != nil {
		s.logger.Error("Failed to commit graph", zap.Uint64("revision", rev), zap.Error(err))
		notice := fmt.Sprintf("Changes could not be saved and are kept in memory only: %v", err)
		s.Notify("error", notice)
		return notice
	}

	s.committed = rev
	return ""
}

// Notify broadcasts a user-facing notice
func (s *EditorService) Notify(level, message string) {
	s.eventBus.Publish(Event{
		Type:    EventNotice,
		Payload: map[string]string{"level": level, "message": message},
	})
}

// Pending reports whether the in-memory graph has changes not yet saved
func (s *EditorService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Revision() != s.committed
}
