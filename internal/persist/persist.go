// Package persist loads and saves the editor graph as a single record in a
// key-value store.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"physmap/internal/domain"
	"physmap/internal/repository"
)

// DefaultKey is the record key used when none is configured
const DefaultKey = "physics-mapper-flow"

// ErrMalformedRecord is returned by Peek when the stored record cannot be decoded
var ErrMalformedRecord = errors.New("malformed graph record")

// Adapter reads and writes the whole graph under one key
type Adapter struct {
	store  repository.KVStore
	key    string
	logger *zap.Logger
}

// New creates an adapter over store. An empty key selects DefaultKey.
func New(store repository.KVStore, key string, logger *zap.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{store: store, key: key, logger: logger}
}

// Key returns the record key
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the persisted graph, or the seed graph when nothing is stored.
//
// The stored id counter is not trusted: it is recomputed from the node
// identifiers. A record that cannot be decoded is quarantined and the seed
// graph is returned; only a failing store read is reported as an error.
func (a *Adapter) Load(ctx context.Context) (*domain.Graph, error) {
	data, found, err := a.store.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.key, err)
	}
	if !found {
		a.logger.Info("No stored graph, starting from seed", zap.String("key", a.key))
		return domain.SeedGraph(), nil
	}

	graph, err := Decode(data)
	if err != nil {
		a.quarantine(ctx, err)
		return domain.SeedGraph(), nil
	}

	a.logger.Info("Loaded stored graph",
		zap.String("key", a.key),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)),
		zap.Int("id_count", graph.IDCount))
	return graph, nil
}

// Peek returns the persisted graph like Load but never modifies the store.
// A record that cannot be decoded is reported as ErrMalformedRecord and left
// in place for the next Load to quarantine.
func (a *Adapter) Peek(ctx context.Context) (*domain.Graph, error) {
	data, found, err := a.store.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.key, err)
	}
	if !found {
		return domain.SeedGraph(), nil
	}

	graph, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w under %s: %w", ErrMalformedRecord, a.key, err)
	}
	return graph, nil
}

func (a *Adapter) quarantine(ctx context.Context, cause error) {
	id, err := a.store.Quarantine(ctx, a.key, cause.Error())
	if err != nil {
		a.logger.Error("Failed to quarantine malformed graph record",
			zap.String("key", a.key), zap.NamedError("cause", cause), zap.Error(err))
		return
	}
	a.logger.Warn("Malformed graph record quarantined, starting from seed",
		zap.String("key", a.key), zap.Int64("quarantine_id", id), zap.Error(cause))
}

// Save serializes the full graph and overwrites the stored record
func (a *Adapter) Save(ctx context.Context, g *domain.Graph) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.key, err)
	}
	return nil
}

// Reset overwrites the stored record with the seed graph and returns it
func (a *Adapter) Reset(ctx context.Context) (*domain.Graph, error) {
	seed := domain.SeedGraph()
	if err := a.Save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Encode serializes a graph in the stored record format
func Encode(g *domain.Graph) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return data, nil
}

// Decode parses a stored record and recomputes the id counter. Records that
// repeat a node or edge id are rejected.
func Decode(data []byte) (*domain.Graph, error) {
	var g domain.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}
	if err := g.CheckUniqueIDs(); err != nil {
		return nil, err
	}
	g.Normalize()
	g.IDCount = domain.NextIDCount(g.Nodes)
	return &g, nil
}
