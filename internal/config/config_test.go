package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveToPath_LoadFromPath_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := &service{filePath: path}

	cfg := DefaultConfig()
	cfg.ServerURL = "http://recs.example:8080"
	cfg.UISettings.Placeholders = 3

	require.NoError(t, svc.SaveToPath(cfg, path))

	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://recs.example:8080", got.ServerURL)
	assert.Equal(t, 3, got.UISettings.Placeholders)
	assert.Equal(t, 1, got.Version)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	svc := &service{filePath: filepath.Join(t.TempDir(), "nope.toml")}

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, "Movie", cfg.DefaultCategory)
	assert.Equal(t, defaultPlaceholders, cfg.UISettings.Placeholders)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_url = \"http://other:9\"\n"), 0644))

	svc := &service{filePath: path}
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://other:9", cfg.ServerURL)
	assert.Equal(t, defaultRequestTimeout, cfg.UISettings.RequestTimeout)
	assert.Equal(t, "recommendi.log", cfg.LogFile)
}

func TestLoadFromPath_BadTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_url = [broken"), 0644))

	svc := &service{filePath: path}
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}
