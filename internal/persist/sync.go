package persist

import (
	"errors"
	"fmt"

	"github.com/wesen/boxline/pkg/graphmodel"
	"go.uber.org/zap"
)

// Sync writes the whole serialized graph to a Store after each logically
// complete mutation, and hydrates the graph at startup.
type Sync struct {
	store   Store
	log     *zap.Logger
	commits int
}

// NewSync returns a Sync over store.
func NewSync(store Store, log *zap.Logger) *Sync {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sync{store: store, log: log}
}

// Load restores the graph. Absent or malformed data yields an empty graph
// so the session can start fresh. An edge referencing a missing node is
// store corruption and is returned as *graphmodel.IntegrityError, as are
// read failures from the store itself.
func (s *Sync) Load() (*graphmodel.Graph, error) {
	data, ok, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load diagram: %w", err)
	}
	if !ok {
		s.log.Info("no stored diagram, starting empty")
		return graphmodel.New(), nil
	}

	g, err := graphmodel.Decode(data)
	if errors.Is(err, graphmodel.ErrMalformed) {
		s.log.Warn("stored diagram is malformed, starting empty",
			zap.Int("bytes", len(data)), zap.Error(err))
		return graphmodel.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load diagram: %w", err)
	}

	s.log.Info("diagram loaded",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("next_id", g.NextID()))
	return g, nil
}

// Commit writes the full graph.
func (s *Sync) Commit(g *graphmodel.Graph) error {
	data, err := g.Encode()
	if err != nil {
		return err
	}
	if err := s.store.Save(data); err != nil {
		return fmt.Errorf("commit diagram: %w", err)
	}
	s.commits++
	s.log.Debug("diagram committed",
		zap.Int("bytes", len(data)),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))
	return nil
}

// Commits returns the number of successful commits.
func (s *Sync) Commits() int { return s.commits }
