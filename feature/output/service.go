package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"twii-miner/core/graph"
	"twii-miner/core/reconcile"
	"twii-miner/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ReportFile is the name the report is published under.
const ReportFile = "report.json"

// File is one rendered artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Artifacts is the verified output of one run. Nothing is written until every
// artifact has rendered and verified.
type Artifacts struct {
	Files        []File
	Verification Verification
}

// Service renders artifacts and hands them to the filesystem or a bucket.
type Service struct {
	logger   *zap.Logger
	fallback graph.Group
}

// NewService creates an output service. fallback is the group for skills whose
// group is still unresolved.
func NewService(logger *zap.Logger, fallback graph.Group) *Service {
	return &Service{logger: logger, fallback: fallback}
}

// Render renders and verifies SkillData.lua, LocaleData.lua and, when report is
// not nil, the JSON report.
func (s *Service) Render(g *graph.Graph, report *reconcile.Report) (*Artifacts, error) {
	skillData := RenderSkillData(g, s.fallback)
	v, err := VerifySkillData(skillData)
	if err != nil {
		return nil, err
	}
	if v.Total() != g.SkillCount() {
		return nil, fmt.Errorf("%w: %s registered %d skills, graph has %d",
			ErrVerification, SkillDataFile, v.Total(), g.SkillCount())
	}

	localeData := RenderLocaleData(g)
	if err := VerifyLocaleData(localeData); err != nil {
		return nil, err
	}

	a := &Artifacts{
		Files: []File{
			{Name: SkillDataFile, ContentType: "text/x-lua", Data: skillData},
			{Name: LocaleDataFile, ContentType: "text/x-lua", Data: localeData},
		},
		Verification: v,
	}
	if report != nil {
		var buf bytes.Buffer
		if err := report.Encode(&buf, reconcile.FormatJSON); err != nil {
			return nil, err
		}
		a.Files = append(a.Files, File{Name: ReportFile, ContentType: "application/json", Data: buf.Bytes()})
	}

	s.logger.Info("artifacts rendered",
		zap.Int("skills", v.Total()),
		zap.Int("label_tags", v.LabelTags),
		zap.Int("files", len(a.Files)),
	)
	return a, nil
}

// WriteFiles writes the Lua artifacts to dir. The report is only written
// through reconcile.Report.WriteFile.
func (s *Service) WriteFiles(a *Artifacts, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, f := range a.Files {
		if f.Name == ReportFile {
			continue
		}
		p := filepath.Join(dir, f.Name)
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		s.logger.Info("artifact written", zap.String("path", p), zap.Int("bytes", len(f.Data)))
	}
	return nil
}

// Publish uploads every artifact to bucket under prefix, creating the bucket
// if it does not exist.
func (s *Service) Publish(ctx context.Context, client storage.Client, bucket, prefix string, a *Artifacts) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.Info("bucket created", zap.String("bucket", bucket))
	}

	for _, f := range a.Files {
		name := ObjectName(prefix, f.Name)
		_, err := client.PutObject(ctx, bucket, name, bytes.NewReader(f.Data), int64(len(f.Data)), minio.PutObjectOptions{
			ContentType: f.ContentType,
		})
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
		s.logger.Info("artifact published", zap.String("bucket", bucket), zap.String("object", name))
	}
	return nil
}

// ObjectName joins the storage prefix and an artifact name.
func ObjectName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
