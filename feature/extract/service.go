package extract

import (
	"context"
	"fmt"

	"twii-miner/core/graph"
	"twii-miner/core/override"
	"twii-miner/core/reconcile"
	"twii-miner/core/xmldoc"

	"go.uber.org/zap"
)

// Service runs full rebuilds: extraction, then reconciliation against the
// override document.
type Service struct {
	cfg    Config
	reader xmldoc.Reader
	logger *zap.Logger
	stages []Extractor
}

// NewService creates a service reading documents through reader.
func NewService(cfg Config, reader xmldoc.Reader, logger *zap.Logger) *Service {
	return &Service{
		cfg:    cfg,
		reader: reader,
		logger: logger,
		stages: DefaultStages(),
	}
}

// Config returns the data configuration the service runs with.
func (s *Service) Config() Config {
	return s.cfg
}

// Extract runs every stage on a fresh graph.
func (s *Service) Extract(ctx context.Context) (*graph.Graph, error) {
	st, err := NewState(s.cfg, s.reader, s.logger)
	if err != nil {
		return nil, err
	}
	if err := NewPipeline(s.logger, s.stages...).Run(ctx, st); err != nil {
		return nil, err
	}
	return st.Graph, nil
}

// Build extracts the graph, reads the override document at cfg.Override and
// reconciles both. The report is returned, not logged.
func (s *Service) Build(ctx context.Context) (*graph.Graph, *reconcile.Report, error) {
	group, err := s.cfg.Group()
	if err != nil {
		return nil, nil, err
	}

	g, err := s.Extract(ctx)
	if err != nil {
		return nil, nil, err
	}

	doc, err := override.Load(s.cfg.Override)
	if err != nil {
		return nil, nil, err
	}

	report, err := reconcile.Reconcile(g, doc, reconcile.Options{DefaultGroup: group})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	return g, report, nil
}
