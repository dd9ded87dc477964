package checks

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"twii-miner/core/storage"
	"twii-miner/feature/output"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PublishedFiles lists the objects a publish leaves under the prefix.
var PublishedFiles = []string{
	output.SkillDataFile,
	output.LocaleDataFile,
	output.ReportFile,
}

// BucketReport is the result of a bucket check.
type BucketReport struct {
	Bucket  string   `json:"bucket"`
	Prefix  string   `json:"prefix"`
	Missing []string `json:"missing"`
	// Stale are objects under the prefix that no publish writes.
	Stale []string `json:"stale"`
	// Skills is the number of skills the published SkillData.lua registers.
	Skills int    `json:"skills"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the published artifacts are complete and load.
func (r *BucketReport) OK() bool {
	return len(r.Missing) == 0 && r.Error == ""
}

func listPrefix(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if p := strings.Trim(prefix, "/"); p != "" {
		opts.Prefix = p + "/"
	}

	var keys []string
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// CheckBucket verifies that the bucket exists, that every published file is
// present under prefix and that the published SkillData.lua still loads.
func CheckBucket(ctx context.Context, client storage.Client, bucket, prefix string) (*BucketReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	keys, err := listPrefix(ctx, client, bucket, prefix)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	report := &BucketReport{Bucket: bucket, Prefix: prefix, Missing: []string{}, Stale: []string{}}
	expected := make(map[string]bool, len(PublishedFiles))
	for _, name := range PublishedFiles {
		objectName := output.ObjectName(prefix, name)
		expected[objectName] = true
		if !present[objectName] {
			report.Missing = append(report.Missing, name)
		}
	}
	for _, k := range keys {
		if !expected[k] {
			report.Stale = append(report.Stale, k)
		}
	}

	skillData := output.ObjectName(prefix, output.SkillDataFile)
	if !present[skillData] {
		return report, nil
	}

	obj, err := client.GetObject(ctx, bucket, skillData, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", skillData, err)
	}
	defer obj.Close()

	src, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", skillData, err)
	}
	v, err := output.VerifySkillData(src)
	if err != nil {
		report.Error = err.Error()
		return report, nil
	}
	report.Skills = v.Total()
	return report, nil
}

// FixBucket creates the bucket if it does not exist and removes the stale
// objects of report.
func FixBucket(ctx context.Context, client storage.Client, bucket string, stale []string, logger *zap.Logger) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
			return err
		}
		logger.Info("created missing bucket", zap.String("bucket", bucket))
		return nil
	}
	if len(stale) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, key := range stale {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	for rErr := range client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil {
			return fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	logger.Info("removed stale objects", zap.String("bucket", bucket), zap.Int("count", len(stale)))
	return nil
}
