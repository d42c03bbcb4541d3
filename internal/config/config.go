// Package config persists sweepr settings to an ini file under the
// user's configuration directory.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/sweepr/internal/application"
	"gopkg.in/ini.v1"
)

const (
	// FileName is the config file name inside the application directory.
	FileName = "config.ini"

	// DefaultOutputDir is where run folders are created when unset.
	DefaultOutputDir = "output"

	// DefaultMaxResults is the per-run result cap when unset.
	DefaultMaxResults = 100
)

// SearchSection holds search defaults.
type SearchSection struct {
	// OutputDir is the root directory for per-run output folders.
	OutputDir string `ini:"output_dir"`

	// MaxResults caps fetched results per run (1-1000).
	MaxResults int `ini:"max_results"`
}

// GitHubSection holds API access settings.
type GitHubSection struct {
	// Token is the personal access token. Only ever displayed masked.
	Token string `ini:"token,omitempty"`

	// EnterpriseHost is the GitHub Enterprise hostname for on-prem
	// searches (e.g. "github.example.com"). Empty means github.com.
	EnterpriseHost string `ini:"enterprise_host,omitempty"`
}

// OrgSection holds the ordered organization list for cloud sweeps.
type OrgSection struct {
	Orgs []string `ini:"orgs,omitempty"`
}

// Config is the persisted application configuration.
type Config struct {
	Search        SearchSection `ini:"search"`
	GitHub        GitHubSection `ini:"github"`
	Organizations OrgSection    `ini:"organizations"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Search: SearchSection{
			OutputDir:  DefaultOutputDir,
			MaxResults: DefaultMaxResults,
		},
	}
}

// Path returns the config file location inside the application directory.
func Path() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

// Load reads the config from the default location. A missing file
// yields defaults, not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. A missing file
// yields defaults, not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	f, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := f.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// Save writes cfg to the default location.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	return SaveTo(cfg, path)
}

// SaveTo writes cfg to an explicit path, creating the parent directory.
// The file may hold a token, so it is written owner-readable only.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f := ini.Empty()
	if err := f.ReflectFrom(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Reset restores the default configuration at the default location.
func Reset() error {
	return Save(Default())
}

// normalize cleans values read from disk: out-of-range caps fall back
// to the default and organization entries are trimmed.
func (c *Config) normalize() {
	if c.Search.OutputDir == "" {
		c.Search.OutputDir = DefaultOutputDir
	}

	if c.Search.MaxResults < 1 || c.Search.MaxResults > 1000 {
		c.Search.MaxResults = DefaultMaxResults
	}

	orgs := make([]string, 0, len(c.Organizations.Orgs))

	for _, org := range c.Organizations.Orgs {
		if org = strings.TrimSpace(org); org != "" {
			orgs = append(orgs, org)
		}
	}

	c.Organizations.Orgs = orgs
}
