package export

import (
	"context"
	"errors"
	"fmt"

	"twii-miner/core/graph"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BatchSize is the number of rows per INSERT.
const BatchSize = 200

// ErrNoDatabase is returned when the export runs without a connection.
var ErrNoDatabase = errors.New("no export database configured")

// Service replaces the export table with the finished catalogue.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	fallback graph.Group
}

// NewService creates an export service.
func NewService(db *gorm.DB, logger *zap.Logger, fallback graph.Group) *Service {
	return &Service{db: db, logger: logger, fallback: fallback}
}

// Migrate creates or updates the export table.
func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return ErrNoDatabase
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&TravelSkill{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// Export deletes every row and inserts one per skill in a single transaction.
// A failure leaves the previous content in place.
func (s *Service) Export(ctx context.Context, g *graph.Graph) (int, error) {
	if s.db == nil {
		return 0, ErrNoDatabase
	}

	skills := g.Skills()
	rows := make([]TravelSkill, 0, len(skills))
	for _, sk := range skills {
		rows = append(rows, Row(sk, s.fallback))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&TravelSkill{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", TableName, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, BatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", TableName, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("catalogue exported", zap.String("table", TableName), zap.Int("rows", len(rows)))
	return len(rows), nil
}
