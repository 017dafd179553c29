package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrios/netrecon/internal/report"
)

// reportCmd regenerates an HTML report from a previously written JSON file.
var reportCmd = &cobra.Command{
	Use:   "report <scan.json>",
	Short: "Regenerate the HTML report from a JSON scan report",
	Long: `Read a JSON report written by a previous scan and regenerate its HTML
report alongside it. Useful after editing report templates or when the
HTML file was lost.`,
	Example: `  netrecon report reports/192_168_1_10_quick_20250314_100000.json`,
	Args:    cobra.ExactArgs(1),
	Run:     runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) {
	jsonPath := args[0]

	doc, err := report.ReadJSON(jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	htmlPath := strings.TrimSuffix(jsonPath, ".json") + "_report.html"
	writer := report.NewWriter(filepath.Dir(jsonPath), []string{"html"})
	if err := writer.WriteHTMLFromDocument(htmlPath, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("HTML report written: %s\n", htmlPath)
}
