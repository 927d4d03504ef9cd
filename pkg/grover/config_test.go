package grover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/cubeq/pkg/cube"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, "search.yaml", `
alphabet: [U, R, F, "U'"]
depth: 2
scramble: [0, 4, 7, 8]
solutions: 6
shots: 500
seed: 17
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"U", "R", "F", "U'"}, cfg.Alphabet)
	assert.Equal(t, 2, cfg.Depth)
	assert.Equal(t, []int{0, 4, 7, 8}, cfg.Scramble)
	assert.Equal(t, 6, cfg.Solutions)
	assert.Equal(t, 500, cfg.Shots)
	assert.Equal(t, int64(17), cfg.Seed)
	// Unset fields keep their defaults.
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "search.json", `{"alphabet": ["F", "B"], "depth": 4, "iterations": 2}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"F", "B"}, cfg.Alphabet)
	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, 2, cfg.Iterations)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("CUBEQ_ALPHABET", "U, F  F'")
	t.Setenv("CUBEQ_DEPTH", "2")
	t.Setenv("CUBEQ_SCRAMBLE", "2,5,10,6")
	t.Setenv("CUBEQ_SEED", "-4")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"U", "F", "F'"}, cfg.Alphabet)
	assert.Equal(t, 2, cfg.Depth)
	assert.Equal(t, []int{2, 5, 10, 6}, cfg.Scramble)
	assert.Equal(t, int64(-4), cfg.Seed)

	t.Setenv("CUBEQ_SHOTS", "many")
	_, err = LoadConfig("")
	assert.ErrorIs(t, err, cube.ErrConfiguration)
}

func TestLoadConfig_Unparseable(t *testing.T) {
	path := writeFile(t, "bad.yaml", "alphabet: [U\n  - : :")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty alphabet", func(c *Config) { c.Alphabet = nil }},
		{"duplicate token", func(c *Config) { c.Alphabet = []string{"U", "U"} }},
		{"blank token", func(c *Config) { c.Alphabet = []string{"U", ""} }},
		{"zero depth", func(c *Config) { c.Depth = 0 }},
		{"scramble out of range", func(c *Config) { c.Scramble = []int{12} }},
		{"negative target", func(c *Config) { c.Target = []int{-1} }},
		{"no shots", func(c *Config) { c.Shots = 0 }},
		{"negative solutions", func(c *Config) { c.Solutions = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), cube.ErrConfiguration)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
