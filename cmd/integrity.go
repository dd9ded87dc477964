package cmd

import (
	"context"
	"fmt"

	"twii-miner/core/config"
	"twii-miner/core/database"
	"twii-miner/core/storage"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd runs every check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the data root, the publish bucket and the export schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

var dataCheckCmd = &cobra.Command{
	Use:   "data",
	Short: "Check the lore and label documents of the data root",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

var bucketCheckCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Check the published artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

var databaseCheckCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the export table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	dataCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "create missing data root directories")
	bucketCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "create the bucket or remove stale objects")
	integrityCmd.AddCommand(dataCheckCmd, bucketCheckCmd, databaseCheckCmd)
	RootCmd.AddCommand(integrityCmd)
}

func newIntegrityService(cfg *config.Config, l *zap.Logger, needStorage, needDB bool) (*integrity.Service, error) {
	opts := integrity.Options{
		Reader: xmldoc.FileReader{},
		Data:   cfg.Data,
		Bucket: cfg.Storage.Bucket,
		Prefix: cfg.Storage.Prefix,
	}
	if needStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		opts.Client = client
	}
	if needDB {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		opts.DB = db
	}
	return integrity.NewService(opts, l), nil
}

func runIntegrityChecks(ctx context.Context, runData, runBucket, runDatabase bool) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	svc, err := newIntegrityService(cfg, l, runBucket, runDatabase)
	if err != nil {
		return err
	}

	failed := false

	if runData {
		l.Info("Checking data root...", zap.String("root", cfg.Data.Root))
		if fixFlag {
			if _, err := svc.FixData(); err != nil {
				return err
			}
		}
		report := svc.CheckData()
		if report.OK() {
			l.Info("Data root is complete.", zap.Int("documents", report.Checked))
		} else {
			failed = true
			if len(report.Missing) > 0 {
				l.Warn("Missing documents", zap.Strings("paths", report.Missing))
			}
			for _, p := range report.Invalid {
				l.Warn("Invalid document", zap.String("path", p.Path), zap.String("error", p.Error))
			}
		}
	}

	if runBucket {
		l.Info("Checking published artifacts...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.CheckBucket(ctx)
		if fixFlag {
			var stale []string
			if err == nil {
				stale = report.Stale
			}
			if err := svc.FixBucket(ctx, stale); err != nil {
				return err
			}
			report, err = svc.CheckBucket(ctx)
		}
		if err != nil {
			return err
		}
		if report.OK() {
			l.Info("Published artifacts are intact.", zap.Int("skills", report.Skills))
		} else {
			failed = true
			l.Warn("Published artifacts are incomplete",
				zap.Strings("missing", report.Missing),
				zap.String("error", report.Error))
		}
		if len(report.Stale) > 0 {
			l.Warn("Stale objects under prefix, run with --fix to remove them", zap.Strings("objects", report.Stale))
		}
	}

	if runDatabase {
		l.Info("Checking export schema...")
		report, err := svc.CheckDatabase()
		if err != nil {
			return err
		}
		if report.Matched {
			l.Info("Export schema matches.", zap.String("table", report.Table))
		} else {
			failed = true
			if len(report.MissingColumns) > 0 {
				l.Warn("Missing columns", zap.Strings("columns", report.MissingColumns))
			}
			if len(report.TypeMismatches) > 0 {
				l.Warn("Type mismatches", zap.Strings("mismatches", report.TypeMismatches))
			}
			for _, e := range report.Errors {
				l.Error("Inspection error", zap.String("error", e))
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
