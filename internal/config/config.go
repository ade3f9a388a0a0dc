// Package config carries the operational settings of the repository tooling.
package config

import (
	"fmt"
	"os"

	"github.com/repomash/repomash/internal/rpmmeta"
	"gopkg.in/yaml.v3"
)

// Config is loaded once at startup and handed to the commands that need it.
type Config struct {
	// CreaterepoBin is the indexer executable to invoke.
	CreaterepoBin string `yaml:"createrepo_bin"`

	// CreaterepoCacheDir is passed to the indexer so repeated runs reuse
	// package metadata they already extracted.
	CreaterepoCacheDir string `yaml:"createrepo_cache_dir"`

	// MashConf is the path of the main mash configuration file. The
	// per-repository .mash files live in the same directory.
	MashConf string `yaml:"mash_conf"`

	// LegacyDigests switches content digests from sha256 to sha1 for
	// masters that still verify the old checksums.
	LegacyDigests bool `yaml:"legacy_digests"`

	// HeaderAPI pins the package header reading strategy. Empty means
	// try each in turn.
	HeaderAPI string `yaml:"header_api"`
}

// Default returns the settings used when no configuration file is given.
func Default() *Config {
	return &Config{
		CreaterepoBin:      "createrepo_c",
		CreaterepoCacheDir: "/var/cache/repomash/createrepo",
		MashConf:           "/etc/mash/mash.conf",
	}
}

// Load reads a YAML configuration file over the defaults, so a file only
// needs to name the settings it changes.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DigestAlgo returns the content digest algorithm in effect.
func (c *Config) DigestAlgo() string {
	if c.LegacyDigests {
		return rpmmeta.DigestSHA1
	}
	return rpmmeta.DigestSHA256
}
