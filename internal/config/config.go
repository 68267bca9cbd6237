// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultAccount is the GitHub account analysed when none is configured.
	DefaultAccount = "anmolmanchanda"
	// DefaultOutputPath is where the LOC report snapshot is written.
	DefaultOutputPath = "loc_analysis.json"
)

// UnsplashKeyNames are the accepted environment variables for the Unsplash
// access key, in lookup order.
var UnsplashKeyNames = []string{"UNSPLASH_ACCESS_KEY", "Unsplash_Access_Key"}

// Config holds every runtime setting of the application.
type Config struct {
	GitHub   GitHubConfig
	Unsplash UnsplashConfig
	Output   OutputConfig
	LogLevel string
}

// GitHubConfig configures the repository listing.
type GitHubConfig struct {
	Account string
	Token   string
	// BaseURL overrides the REST endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	// WaitOnRateLimit enables sleeping through secondary rate limits.
	WaitOnRateLimit bool
}

// UnsplashConfig configures the image search client.
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
}

// OutputConfig locates the LOC report snapshot.
type OutputConfig struct {
	Path string
}

// Load reads a .env file if one exists and builds the configuration from
// environment variables. Missing credentials are not an error here; the
// component that needs them decides. A .env that exists but cannot be
// parsed is an error.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return &Config{
		GitHub: GitHubConfig{
			Account: getEnv("GITHUB_USERNAME", DefaultAccount),
			Token:   getEnv("GITHUB_TOKEN", ""),
			BaseURL: getEnv("GITHUB_API_URL", ""),
		},
		Unsplash: UnsplashConfig{
			AccessKey: firstEnv(UnsplashKeyNames...),
			BaseURL:   getEnv("UNSPLASH_API_URL", ""),
		},
		Output: OutputConfig{
			Path: getEnv("LOC_OUTPUT_PATH", DefaultOutputPath),
		},
		LogLevel: getEnv("LOG_LEVEL", ""),
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
