package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thaodangspace/crashlogs/internal/config"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the effective diagnostic directories and filters",
	RunE:  runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Warning: failed to load settings: %v\n", err)
		settings = config.DefaultSettings()
	}
	settings = settings.Rebased(scanRoot)

	fmt.Printf("System reports:      %s\n", settings.SystemReportDir)
	fmt.Printf("Per-user reports:    <home>/%s\n", settings.UserReportDir)
	fmt.Printf("Mobile reports:      <home>/%s/<device>\n", settings.MobileReportDir)
	if len(settings.UserHomes) > 0 {
		fmt.Printf("User homes:          %s\n", strings.Join(settings.UserHomes, ", "))
	} else {
		fmt.Printf("User homes under:    %s\n", settings.UserHomesDir)
	}
	fmt.Printf("Report suffix:       %s\n", settings.ReportSuffix)
	fmt.Printf("Noise patterns:      %s\n", strings.Join(settings.NoisePatterns, ", "))
	return nil
}
