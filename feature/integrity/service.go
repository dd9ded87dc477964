package integrity

import (
	"context"
	"errors"

	"twii-miner/core/storage"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/extract"
	"twii-miner/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoStorage is returned by bucket checks when no storage client is set.
	ErrNoStorage = errors.New("storage is not configured")
	// ErrNoDatabase is returned by database checks when no connection is set.
	ErrNoDatabase = errors.New("database is not configured")
)

// Service handles integrity checks.
type Service struct {
	reader xmldoc.Reader
	data   extract.Config
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
}

// Options collects the dependencies of the service. Client and DB may be nil;
// the checks needing them then fail with ErrNoStorage or ErrNoDatabase.
type Options struct {
	Reader xmldoc.Reader
	Data   extract.Config
	Client storage.Client
	Bucket string
	Prefix string
	DB     *gorm.DB
}

// NewService creates a new integrity service.
func NewService(opts Options, logger *zap.Logger) *Service {
	reader := opts.Reader
	if reader == nil {
		reader = xmldoc.FileReader{}
	}
	return &Service{
		reader: reader,
		data:   opts.Data,
		client: opts.Client,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		db:     opts.DB,
		logger: logger,
	}
}

// CheckData checks the documents of the data root.
func (s *Service) CheckData() *checks.DataReport {
	return checks.CheckDataRoot(s.reader, s.data)
}

// FixData creates the missing data root directories.
func (s *Service) FixData() ([]string, error) {
	return checks.FixDataRoot(s.data, s.logger)
}

// CheckBucket checks the published artifacts.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckBucket(ctx, s.client, s.bucket, s.prefix)
}

// FixBucket creates the bucket or removes the given stale objects.
func (s *Service) FixBucket(ctx context.Context, stale []string) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixBucket(ctx, s.client, s.bucket, stale, s.logger)
}

// CheckDatabase compares the export table with the export model.
func (s *Service) CheckDatabase() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckDatabase(s.db)
}
