package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thaodangspace/crashlogs/internal/config"
)

var (
	// Global flags
	uidFilter string
	scanRoot  string
	verbose   bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "crashlogs",
		Short: "Crashlogs - structured view of macOS and iOS crash reports",
		Long: `Crashlogs walks the well-known diagnostic report directories, parses
every crash report it finds into a structured record, and presents the
records as a table, JSON, a SQLite database, or an HTTP API.`,
		Version: "0.1.0",
		RunE:    runScan,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&uidFilter, "uid", "", "Restrict the scan to the given user id (system reports are skipped unless uid is 0)")
	rootCmd.PersistentFlags().StringVar(&scanRoot, "root", "", "Scan the diagnostic directories under this root instead of /")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pathsCmd)
}

// Execute runs the root command
func Execute() error {
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		if err := config.SetupViper(); err != nil {
			log.WithError(err).Debug("Could not initialize settings")
		}
	})
	return rootCmd.Execute()
}
