package cmd

import (
	"context"
	"fmt"

	"twii-miner/core/database"
	"twii-miner/core/storage"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/export"
	"twii-miner/feature/extract"
	"twii-miner/feature/output"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outFlag        string
	reportFileFlag string
	publishFlag    bool
	exportFlag     bool
)

// buildCmd runs a full rebuild and writes the addon data files.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract, reconcile and write the addon data files",
	Long: `Runs every extraction stage over the data root, reconciles the result
with the override document, logs the report and writes SkillData.lua and
LocaleData.lua. Nothing is written when extraction fails. Local files are
written first; the database export and the bucket upload run afterwards.

Examples:
  # Rebuild into the configured output directory
  twii-miner build --root ./data

  # Also keep the report and publish to the bucket
  twii-miner build --report-file report.yaml --publish`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&outFlag, "out", "", "output directory (overrides DATA_OUTPUT_DIR)")
	buildCmd.Flags().StringVar(&reportFileFlag, "report-file", "", "write the report to this file (.json, .yaml or .yml)")
	buildCmd.Flags().BoolVar(&publishFlag, "publish", false, "upload the artifacts and the report to the storage bucket")
	buildCmd.Flags().BoolVar(&exportFlag, "export", false, "replace the export table with the rebuilt catalogue")
	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	if outFlag != "" {
		cfg.Data.OutputDir = outFlag
	}
	fallback, err := cfg.Data.Group()
	if err != nil {
		return err
	}

	// Connections are opened before the rebuild so a bad target fails the
	// run before anything is written.
	var client storage.Client
	if publishFlag {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	var exporter *export.Service
	if exportFlag {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		exporter = export.NewService(db, l, fallback)
	}

	l.Info("Starting rebuild", zap.String("root", cfg.Data.Root), zap.String("override", cfg.Data.Override))
	g, report, err := extract.NewService(cfg.Data, xmldoc.FileReader{}, l).Build(ctx)
	if err != nil {
		return err
	}
	report.Log(l)

	svc := output.NewService(l, fallback)
	artifacts, err := svc.Render(g, report)
	if err != nil {
		return err
	}

	local := func() error {
		if err := svc.WriteFiles(artifacts, cfg.Data.OutputDir); err != nil {
			return err
		}
		if reportFileFlag != "" {
			if err := report.WriteFile(reportFileFlag); err != nil {
				return err
			}
			l.Info("Report written", zap.String("path", reportFileFlag))
		}
		return nil
	}
	var remote []func(context.Context) error
	if exporter != nil {
		remote = append(remote, func(ctx context.Context) error {
			if err := exporter.Migrate(ctx); err != nil {
				return err
			}
			_, err := exporter.Export(ctx, g)
			return err
		})
	}
	if client != nil {
		remote = append(remote, func(ctx context.Context) error {
			return svc.Publish(ctx, client, cfg.Storage.Bucket, cfg.Storage.Prefix, artifacts)
		})
	}
	if err := deliver(ctx, local, remote...); err != nil {
		return err
	}

	l.Info("Rebuild complete",
		zap.Int("skills", g.SkillCount()),
		zap.Bool("clean", report.Clean()),
	)
	return nil
}

// deliver runs local before any remote step. Remote steps run in order and
// stop at the first error.
func deliver(ctx context.Context, local func() error, remote ...func(context.Context) error) error {
	if err := local(); err != nil {
		return err
	}
	for _, step := range remote {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
