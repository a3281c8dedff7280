package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thaodangspace/crashlogs/internal/store"
)

var (
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Scan and write the crash records to a SQLite database",
		RunE:  runExport,
	}

	dbPath string
)

func init() {
	exportCmd.Flags().StringVar(&dbPath, "db", "crashes.db", "Path of the SQLite database to write")
}

func runExport(cmd *cobra.Command, args []string) error {
	records, err := scanRecords()
	if err != nil {
		return err
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	if err := db.InsertAll(records); err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	fmt.Printf("Exported %d crash report(s) to %s\n", len(records), dbPath)
	return nil
}
