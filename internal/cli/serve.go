package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thaodangspace/crashlogs/internal/server"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Scan and serve the crash records over an HTTP JSON API",
		RunE:  runServe,
	}

	serveAddr string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8085", "Listen address for the API")
}

func runServe(cmd *cobra.Command, args []string) error {
	records, err := scanRecords()
	if err != nil {
		return err
	}

	fmt.Printf("Serving %d crash report(s) on http://%s/crashes\n", len(records), serveAddr)

	srv := server.New(records, verbose)
	if err := srv.Run(serveAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
