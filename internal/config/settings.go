package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings represents the application settings. The suffix and noise
// patterns are configurable because the set of files macOS drops into the
// diagnostic directories keeps growing with OS releases.
type Settings struct {
	ReportSuffix    string   `json:"report_suffix" mapstructure:"report_suffix"`
	NoisePatterns   []string `json:"noise_patterns" mapstructure:"noise_patterns"`
	SystemReportDir string   `json:"system_report_dir" mapstructure:"system_report_dir"`
	UserReportDir   string   `json:"user_report_dir" mapstructure:"user_report_dir"`
	MobileReportDir string   `json:"mobile_report_dir" mapstructure:"mobile_report_dir"`
	UserHomesDir    string   `json:"user_homes_dir" mapstructure:"user_homes_dir"`
	UserHomes       []string `json:"user_homes" mapstructure:"user_homes"`
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		ReportSuffix:    ".crash",
		NoisePatterns:   []string{"LowBattery"},
		SystemReportDir: "/Library/Logs/DiagnosticReports",
		UserReportDir:   "Library/Logs/DiagnosticReports",
		MobileReportDir: "Library/Logs/CrashReporter/MobileDevice",
		UserHomesDir:    "/Users",
	}
}

// LoadSettings loads settings from the configuration file
func LoadSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultSettings(), nil
	}

	configDir := filepath.Join(homeDir, ".config", "crashlogs")
	configFile := filepath.Join(configDir, "settings.json")

	// Check if config file exists
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	// Read the config file
	data, err := os.ReadFile(configFile)
	if err != nil {
		return DefaultSettings(), nil
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return DefaultSettings(), nil
	}

	return settings, nil
}

// Save saves the settings to the configuration file
func (s *Settings) Save() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".config", "crashlogs")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	configFile := filepath.Join(configDir, "settings.json")
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(configFile, data, 0644)
}

// Rebased returns a copy of the settings with the absolute search roots
// re-anchored under root, for scanning a mounted image instead of the live
// system. Relative per-user paths are unaffected.
func (s *Settings) Rebased(root string) *Settings {
	if root == "" {
		return s
	}
	out := *s
	out.SystemReportDir = filepath.Join(root, s.SystemReportDir)
	out.UserHomesDir = filepath.Join(root, s.UserHomesDir)
	homes := make([]string, len(s.UserHomes))
	for i, h := range s.UserHomes {
		homes[i] = filepath.Join(root, h)
	}
	out.UserHomes = homes
	return &out
}

// IsNoise reports whether the file name matches one of the configured noise
// patterns and should be excluded from scanning.
func (s *Settings) IsNoise(name string) bool {
	for _, pattern := range s.NoisePatterns {
		if pattern != "" && strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// GetConfigDir returns the application configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "crashlogs"), nil
}

// SetupViper configures viper for settings management
func SetupViper() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".config", "crashlogs")
	viper.SetConfigName("settings")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	// Set defaults
	defaults := DefaultSettings()
	viper.SetDefault("report_suffix", defaults.ReportSuffix)
	viper.SetDefault("noise_patterns", defaults.NoisePatterns)
	viper.SetDefault("system_report_dir", defaults.SystemReportDir)
	viper.SetDefault("user_report_dir", defaults.UserReportDir)
	viper.SetDefault("mobile_report_dir", defaults.MobileReportDir)
	viper.SetDefault("user_homes_dir", defaults.UserHomesDir)

	// Read config (ignore error if file doesn't exist)
	_ = viper.ReadInConfig()

	return nil
}
