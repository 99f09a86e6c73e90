package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NotInitialized(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Owner: "acme", Repo: "widgets", Trunk: "main", Remote: "origin"}

	require.NoError(t, Save(dir, cfg))
	assert.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("owner = [broken"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_MissingFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`owner = "acme"`), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSave_RejectsInvalid(t *testing.T) {
	err := Save(t.TempDir(), &Config{Owner: "acme"})
	assert.Error(t, err)
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets", "acme", "widgets"},
		{"git@github.com:acme/widgets.git", "acme", "widgets"},
		{"git@github.com:acme/widgets", "acme", "widgets"},
		{"ssh://git@github.com/acme/widgets.git", "acme", "widgets"},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRemoteURL(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.owner, owner, tt.url)
		assert.Equal(t, tt.repo, repo, tt.url)
	}
}

func TestParseRemoteURL_Invalid(t *testing.T) {
	for _, url := range []string{"", "github.com", "https://github.com/acme"} {
		_, _, err := ParseRemoteURL(url)
		assert.Error(t, err, url)
	}
}
