package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"physmap/internal/domain"
	"physmap/internal/repository"
	"physmap/internal/repository/sqlite"
)

func newSQLiteAdapter(t *testing.T) (*Adapter, *sqlite.Repository) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return New(repo, "", zap.NewNop()), repo
}

// failingStore is a KVStore whose writes can be made to fail
type failingStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	putErr   error
	getErr   error
	quarErr  error
	quarCall int
}

func newFailingStore() *failingStore {
	return &failingStore{data: make(map[string][]byte)}
}

func (s *failingStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *failingStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.data[key] = value
	return nil
}

func (s *failingStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *failingStore) Quarantine(_ context.Context, key, _ string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quarCall++
	if s.quarErr != nil {
		return 0, s.quarErr
	}
	delete(s.data, key)
	return int64(s.quarCall), nil
}

func (s *failingStore) ListQuarantined(context.Context) ([]repository.QuarantinedRecord, error) {
	return nil, nil
}

func (s *failingStore) Close() error { return nil }

func TestLoadEmptyReturnsSeed(t *testing.T) {
	a, _ := newSQLiteAdapter(t)

	g, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SeedGraph(), g)
	assert.Equal(t, 3, g.IDCount)
}

func TestLoadRecomputesCounter(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		ids    []string
		stored int
		want   int
	}{
		{"legacy ids", []string{"node-1", "node-9", "node-4"}, 2, 10},
		{"stale high counter is replaced", []string{"node-1"}, 50, 2},
		{"no numbered nodes", []string{"a", "b"}, 7, 1},
		{"empty graph", nil, 5, 1},
		{"bare runtime ids", []string{"node-1", "12"}, 3, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, repo := newSQLiteAdapter(t)

			nodes := make([]string, 0, len(tt.ids))
			for _, id := range tt.ids {
				nodes = append(nodes, fmt.Sprintf(`{"id":%q,"position":{"x":0,"y":0},"data":{"label":"l","formula":"f","description":"","category":"math"}}`, id))
			}
			record := fmt.Sprintf(`{"nodes":[%s],"edges":[],"idCount":%d}`, strings.Join(nodes, ","), tt.stored)
			require.NoError(t, repo.Put(ctx, DefaultKey, []byte(record)))

			g, err := a.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.IDCount)
			assert.Len(t, g.Nodes, len(tt.ids))
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a, _ := newSQLiteAdapter(t)

	g := domain.SeedGraph()
	g.Nodes = append(g.Nodes, domain.NewNode("3", domain.Position{X: 12.5, Y: -4}, domain.NodeData{
		Label:       "Coulomb's law",
		Formula:     `F = k\frac{q_1 q_2}{r^2}`,
		Description: "Electrostatic force",
		Category:    domain.CategoryElectromagnetism,
	}))
	g.Edges = append(g.Edges, domain.Edge{ID: "e-x", Source: "3", Target: "node-1", Label: "compare"})
	g.IDCount = 4

	require.NoError(t, a.Save(ctx, g))

	loaded, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, loaded.Nodes)
	assert.Equal(t, g.Edges, loaded.Edges)
	assert.GreaterOrEqual(t, loaded.IDCount, g.IDCount)
}

func TestSaveRecordShape(t *testing.T) {
	data, err := Encode(domain.SeedGraph())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"idCount":3`)
	assert.Contains(t, s, `"position":{"x":250,"y":50}`)
	assert.Contains(t, s, `"style":{"background":"#E3F2FD","border":"1px solid #2196F3","width":180}`)
	assert.Contains(t, s, `"animated":true`)
	assert.Contains(t, s, `"label":"substitute"`)
}

func TestLoadMalformedFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer repo.Close()
	a := New(repo, "", zap.New(core))

	require.NoError(t, repo.Put(ctx, DefaultKey, []byte(`{"nodes": [`)))

	g, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedGraph(), g)

	records, err := repo.ListQuarantined(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `{"nodes": [`, records[0].Value)

	_, found, err := repo.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, 1, logs.FilterMessage("Malformed graph record quarantined, starting from seed").Len())
}

func TestLoadMalformedQuarantineFailureStillFallsBack(t *testing.T) {
	store := newFailingStore()
	store.data[DefaultKey] = []byte("not json")
	store.quarErr = errors.New("disk full")

	g, err := New(store, "", nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SeedGraph(), g)
	assert.Equal(t, 1, store.quarCall)
}

func TestLoadReadFailure(t *testing.T) {
	store := newFailingStore()
	store.getErr = errors.New("io error")

	_, err := New(store, "", nil).Load(context.Background())
	assert.Error(t, err)
}

func TestSaveWriteFailure(t *testing.T) {
	store := newFailingStore()
	quota := errors.New("quota exceeded")
	store.putErr = quota

	err := New(store, "custom", nil).Save(context.Background(), domain.SeedGraph())
	assert.ErrorIs(t, err, quota)
}

func TestCustomKey(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	a := New(store, "other-key", nil)
	assert.Equal(t, "other-key", a.Key())

	require.NoError(t, a.Save(ctx, domain.SeedGraph()))
	_, ok := store.data["other-key"]
	assert.True(t, ok)
	_, ok = store.data[DefaultKey]
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	a, _ := newSQLiteAdapter(t)

	g := domain.SeedGraph()
	g.Nodes = g.Nodes[:1]
	require.NoError(t, a.Save(ctx, g))

	seed, err := a.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedGraph(), seed)

	loaded, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, 2)
}

func TestPeekLeavesMalformedRecord(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	store.data[DefaultKey] = []byte("not json")
	a := New(store, "", nil)

	_, err := a.Peek(ctx)
	require.ErrorIs(t, err, ErrMalformedRecord)
	assert.Zero(t, store.quarCall)
	assert.Equal(t, []byte("not json"), store.data[DefaultKey])

	g, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedGraph(), g)
	assert.Equal(t, 1, store.quarCall)
}

func TestPeek(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store shows seed", func(t *testing.T) {
		a, _ := newSQLiteAdapter(t)
		g, err := a.Peek(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.SeedGraph(), g)
	})

	t.Run("stored graph", func(t *testing.T) {
		a, _ := newSQLiteAdapter(t)
		g := domain.SeedGraph()
		g.Nodes[0].Data.Label = "Second law"
		require.NoError(t, a.Save(ctx, g))

		got, err := a.Peek(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Second law", got.Nodes[0].Data.Label)
	})

	t.Run("read failure", func(t *testing.T) {
		store := newFailingStore()
		store.getErr = errors.New("locked")
		_, err := New(store, "", nil).Peek(ctx)
		assert.ErrorContains(t, err, "locked")
	})
}

func TestDecodeRejectsRepeatedNodeIDs(t *testing.T) {
	node := `{"id":"a","position":{"x":0,"y":0},"data":{"label":"l","formula":"f","description":"","category":"math"}}`
	_, err := Decode([]byte(`{"nodes":[` + node + `,` + node + `],"edges":[]}`))
	assert.ErrorIs(t, err, domain.ErrDuplicateNode)
}
