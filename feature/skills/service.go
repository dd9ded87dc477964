package skills

import (
	"context"
	"time"

	"twii-miner/core/graph"
	"twii-miner/core/reconcile"

	"go.uber.org/zap"
)

// Builder runs one full rebuild of the graph and its reconciliation report.
type Builder interface {
	Build(ctx context.Context) (*graph.Graph, *reconcile.Report, error)
}

// View is a skill as served over HTTP, with its group resolved.
type View struct {
	*graph.Skill
	Group graph.Group `json:"group"`
	ID    string      `json:"id"`
}

// Filter narrows a skill listing. Zero fields match everything.
type Filter struct {
	Group  graph.Group
	Status *graph.Status
}

func (f Filter) match(v View) bool {
	if f.Group != graph.GroupUnknown && v.Group != f.Group {
		return false
	}
	if f.Status != nil && v.Status != *f.Status {
		return false
	}
	return true
}

// Service serves the most recent build, rebuilding it at most once per TTL.
type Service struct {
	builder  Builder
	cache    *reconcile.Cache
	key      string
	fallback graph.Group
	logger   *zap.Logger
}

// NewService creates a skills service. key identifies the data root in the
// cache; fallback is the group of skills whose group is still unresolved.
func NewService(builder Builder, key string, fallback graph.Group, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		builder:  builder,
		cache:    reconcile.NewCache(ttl),
		key:      key,
		fallback: fallback,
		logger:   logger,
	}
}

// Snapshot returns the cached build, rebuilding it if it expired.
func (s *Service) Snapshot(ctx context.Context) (*reconcile.Snapshot, error) {
	return s.cache.Get(ctx, s.key, func(ctx context.Context) (*graph.Graph, *reconcile.Report, error) {
		start := time.Now()
		g, report, err := s.builder.Build(ctx)
		if err != nil {
			return nil, nil, err
		}
		s.logger.Info("graph rebuilt",
			zap.Int("skills", g.SkillCount()),
			zap.Duration("duration", time.Since(start)),
		)
		report.Log(s.logger)
		return g, report, nil
	})
}

// Rebuild discards the cached build and builds a fresh one.
func (s *Service) Rebuild(ctx context.Context) (*reconcile.Snapshot, error) {
	s.cache.Invalidate(s.key)
	return s.Snapshot(ctx)
}

// List returns the skills matching f, ordered by id.
func (s *Service) List(ctx context.Context, f Filter) ([]View, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	views := []View{}
	for _, sk := range snap.Graph.Skills() {
		v := s.view(sk)
		if f.match(v) {
			views = append(views, v)
		}
	}
	return views, nil
}

// Get returns one skill.
func (s *Service) Get(ctx context.Context, id uint32) (View, bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return View{}, false, err
	}
	sk, ok := snap.Graph.Skill(id)
	if !ok {
		return View{}, false, nil
	}
	return s.view(sk), true, nil
}

// Report returns the reconciliation report of the cached build.
func (s *Service) Report(ctx context.Context) (*reconcile.Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Report, nil
}

func (s *Service) view(sk *graph.Skill) View {
	return View{
		Skill: sk,
		Group: sk.EffectiveGroup(s.fallback),
		ID:    graph.FormatID(sk.ID),
	}
}
