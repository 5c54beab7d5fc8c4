package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/willfong/hh-vacancies/internal/export"
	"github.com/willfong/hh-vacancies/internal/ui"
)

var (
	exportFormat  string
	exportOutput  string
	exportKeyword string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every report to a workbook or CSV files",
	Long: `Run all queries and write the results to files.

Formats:
  xlsx   One workbook with a sheet per report (default)
  csv    One CSV file per report in the output directory

The search sheet uses --keyword; without it every vacancy name is listed.

Examples:
  hhq export --output report.xlsx
  hhq export --format csv --output ./reports --keyword python`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "output format (xlsx, csv)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (xlsx) or directory (csv)")
	exportCmd.Flags().StringVarP(&exportKeyword, "keyword", "k", "", "keyword for the search sheet")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	output := exportOutput
	switch format {
	case "xlsx":
		if output == "" {
			output = "hh_report.xlsx"
		}
	case "csv":
		if output == "" {
			output = "hh_report"
		}
	default:
		return fmt.Errorf("unknown export format %q (valid: xlsx, csv)", exportFormat)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	var report *export.Report
	err = s.ui.Spin("Running queries", func() error {
		var err error
		report, err = export.Collect(s.ctx, s.manager, exportKeyword)
		return err
	})
	if err != nil {
		return fmt.Errorf("collecting report: %w", err)
	}
	if !report.HasAverage {
		fmt.Fprintln(os.Stderr, s.ui.Warning("No vacancy states a salary; the average is left empty"))
	}

	bar := s.ui.NewProgressBar("Writing "+format, len(report.Sheets()))
	if format == "xlsx" {
		err = export.WriteWorkbook(output, report, bar.Step)
	} else {
		_, err = export.WriteCSV(output, report, bar.Step)
	}
	if err != nil {
		bar.Fail(err)
		return fmt.Errorf("writing %s: %w", output, err)
	}
	bar.Complete(output)

	fmt.Fprintln(os.Stderr, s.ui.SummaryBox("Export", []ui.KV{
		{Key: "Employers", Value: fmt.Sprintf("%d", len(report.Companies))},
		{Key: "Vacancies", Value: fmt.Sprintf("%d", len(report.Vacancies))},
		{Key: "Above average", Value: fmt.Sprintf("%d", len(report.AboveAverage))},
		{Key: "Keyword matches", Value: fmt.Sprintf("%d", len(report.Matches))},
	}))
	return nil
}
