// Package config loads application configuration from config files,
// environment variables and .env files.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fixturecal/fixturecal/pkg/constants"
)

// Config holds the application configuration.
type Config struct {
	// Team settings
	TeamName     string
	HomeVenue    string
	DigestHeader string

	// Registry settings
	RegistryPath         string
	SimilarityThreshold  float64
	GenericStadiumMinLen int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from all sources in order of precedence:
// command-line flags (bound by cobra), environment variables, .env files,
// config file (~/.fixturecal.yaml), defaults.
func Load() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fixturecal")
	}

	// Config file is optional.
	_ = viper.ReadInConfig()

	return &Config{
		TeamName:     viper.GetString("team_name"),
		HomeVenue:    viper.GetString("home_venue"),
		DigestHeader: viper.GetString("digest_header"),

		RegistryPath:         viper.GetString("registry_path"),
		SimilarityThreshold:  viper.GetFloat64("similarity_threshold"),
		GenericStadiumMinLen: viper.GetInt("generic_stadium_min_len"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "auto"),
		LogOutput: envOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// setDefaults registers defaults so viper.Get* never returns zero values
// for tunables.
func setDefaults() {
	viper.SetDefault("digest_header", "Calendar Update")
	viper.SetDefault("registry_path", constants.DefaultRegistryFile)
	viper.SetDefault("similarity_threshold", constants.SimilarityThreshold)
	viper.SetDefault("generic_stadium_min_len", constants.GenericStadiumMinLen)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// envOrDefault returns the environment variable value or the default.
func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
