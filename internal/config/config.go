package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the repository-root configuration file.
const FileName = ".ztk.toml"

// ErrNotInitialized indicates the repository has no ztk configuration yet.
var ErrNotInitialized = errors.New("ztk is not initialized in this repository: run 'ztk init'")

// Config names the forge repository and the branches ztk synchronizes
// against. It is the only state ztk persists; everything else is
// rediscovered from git and the forge on each run.
type Config struct {
	Owner  string `toml:"owner"`
	Repo   string `toml:"repo"`
	Trunk  string `toml:"trunk"`
	Remote string `toml:"remote"`
}

// Load reads the configuration from the repository root.
func Load(gitRoot string) (*Config, error) {
	path := filepath.Join(gitRoot, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to the repository root.
func Save(gitRoot string, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(gitRoot, FileName)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether the repository has been initialized.
func Exists(gitRoot string) bool {
	_, err := os.Stat(filepath.Join(gitRoot, FileName))
	return err == nil
}

func (c *Config) validate() error {
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("owner and repo are required")
	}
	if c.Trunk == "" {
		return fmt.Errorf("trunk branch is required")
	}
	if c.Remote == "" {
		return fmt.Errorf("remote name is required")
	}
	return nil
}

// ParseRemoteURL extracts owner and repo from a git remote URL. Both
// https://github.com/owner/repo(.git) and git@github.com:owner/repo(.git)
// forms are understood.
func ParseRemoteURL(remoteURL string) (owner string, repo string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
		// drop the host
		if slash := strings.Index(s, "/"); slash >= 0 {
			s = s[slash+1:]
		}
	} else if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot determine owner/repo from remote URL %q", remoteURL)
	}
	return parts[0], parts[1], nil
}
