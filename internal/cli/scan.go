package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thaodangspace/crashlogs/internal/config"
	"github.com/thaodangspace/crashlogs/internal/discovery"
	"github.com/thaodangspace/crashlogs/internal/report"
)

var (
	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan the diagnostic directories and print the crash records (default)",
		RunE:  runScan,
	}

	jsonOutput bool
)

func init() {
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON instead of a table")
}

// scanRecords runs one discovery pass with the effective settings. Shared by
// scan, export and serve.
func scanRecords() ([]report.Record, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Warning: failed to load settings: %v\n", err)
		settings = config.DefaultSettings()
	}
	settings = settings.Rebased(scanRoot)

	walker := discovery.NewWalker(afero.NewOsFs(), settings)
	return walker.Scan(uidFilter), nil
}

func runScan(cmd *cobra.Command, args []string) error {
	records, err := scanRecords()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No crash reports found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Type", "PID", "Identifier", "Date/Time", "Exception Type", "Crash Path")
	for _, rec := range records {
		table.Append([]string{
			rec.Type,
			rec.PID,
			rec.Identifier,
			rec.DateTime,
			rec.ExceptionType,
			rec.CrashPath,
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\n%d crash report(s)\n", len(records))
	return nil
}

func printJSON(records []report.Record) error {
	out := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Fields())
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
