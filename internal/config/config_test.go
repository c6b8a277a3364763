package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvClassifierURL, "https://classifier.example.com/map")
	t.Setenv(EnvClassifierKey, "secret")

	cfg := FromEnv()
	assert.Equal(t, "https://classifier.example.com/map", cfg.ClassifierURL)
	assert.Equal(t, "secret", cfg.ClassifierAPIKey)
	assert.Equal(t, DefaultClassifierTimeout, cfg.ClassifierTimeout)
	assert.True(t, cfg.ClassifierEnabled())
}

func TestClassifierDisabledWhenUnset(t *testing.T) {
	t.Setenv(EnvClassifierURL, "")
	t.Setenv(EnvClassifierKey, "")

	assert.False(t, FromEnv().ClassifierEnabled())
}

func TestClassifierDisabledWhenPartial(t *testing.T) {
	t.Setenv(EnvClassifierURL, "https://classifier.example.com/map")
	t.Setenv(EnvClassifierKey, "")

	assert.False(t, FromEnv().ClassifierEnabled())
}
