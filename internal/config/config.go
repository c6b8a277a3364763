// Package config reads the pipeline's ambient configuration. The only
// secrets are the mapping classifier endpoint and its API key; both absent
// means the classifier is disabled and enrichment silently degrades.
package config

import (
	"os"
	"time"
)

// Environment variable names for the classifier secrets.
const (
	EnvClassifierURL = "MAPPING_API_URL"
	EnvClassifierKey = "MAPPING_API_KEY"
)

// DefaultClassifierTimeout bounds the single classifier request.
const DefaultClassifierTimeout = 45 * time.Second

// Config holds per-run settings read once from the environment.
type Config struct {
	ClassifierURL     string
	ClassifierAPIKey  string
	ClassifierTimeout time.Duration
}

// FromEnv reads the classifier settings from the process environment.
func FromEnv() Config {
	return Config{
		ClassifierURL:     os.Getenv(EnvClassifierURL),
		ClassifierAPIKey:  os.Getenv(EnvClassifierKey),
		ClassifierTimeout: DefaultClassifierTimeout,
	}
}

// ClassifierEnabled reports whether the external classifier is configured.
func (c Config) ClassifierEnabled() bool {
	return c.ClassifierURL != "" && c.ClassifierAPIKey != ""
}
