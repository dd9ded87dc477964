package cmd

import (
	"os"

	"twii-miner/core/reconcile"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/extract"

	"github.com/spf13/cobra"
)

var reportFormatFlag string

// reportCmd runs extraction and reconciliation and prints the report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the reconciliation report without writing data files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		_, report, err := extract.NewService(cfg.Data, xmldoc.FileReader{}, l).Build(cmd.Context())
		if err != nil {
			return err
		}
		report.Log(l)

		if reportFileFlag != "" {
			return report.WriteFile(reportFileFlag)
		}
		return report.Encode(os.Stdout, reconcile.Format(reportFormatFlag))
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormatFlag, "format", string(reconcile.FormatYAML), "output format when printing (json or yaml)")
	reportCmd.Flags().StringVar(&reportFileFlag, "report-file", "", "write the report to this file instead of stdout")
	RootCmd.AddCommand(reportCmd)
}
