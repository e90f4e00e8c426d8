package cmd

import (
	"github.com/buildsy/buildsy-backend/models"
	"github.com/spf13/cobra"
)

var (
	genOut        string
	genReportOnly bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate gorm query helpers and report unmapped columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		if genReportOnly {
			return models.GenerateColumnMismatchReport(db, cmd.OutOrStdout())
		}
		return models.GenerateModels(db, genOut, cmd.OutOrStdout())
	},
}

func init() {
	genCmd.Flags().StringVar(&genOut, "out", "./query", "Output directory for generated query helpers")
	genCmd.Flags().BoolVar(&genReportOnly, "report-only", false, "Only print the column mismatch report")
	rootCmd.AddCommand(genCmd)
}
