// Package config handles antik-go configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns where a config file is looked for absent
// an explicit -config flag and an ANTIK_CONFIG override: the working
// directory, the user's XDG config dir, the container convention
// /config, then the system-wide /etc location, in that order.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "antik", "config.yaml"))
	}

	paths = append(paths, "/config/config.yaml") // Container convention
	paths = append(paths, "/etc/antik/config.yaml")
	return paths
}

// FindConfig resolves which config file idlewatch/fetchattach should
// load: the -config flag value if given, else the ANTIK_CONFIG
// environment variable, else the first existing path from
// DefaultSearchPaths. An explicit path (flag or env var) must exist;
// a search-path miss only fails once every candidate has been tried.
func FindConfig(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv("ANTIK_CONFIG")
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all antik-go CLI driver configuration.
type Config struct {
	Accounts []AccountConfig `yaml:"accounts"`
	DataDir  string          `yaml:"data_dir"`
	LogLevel string          `yaml:"log_level"`
}

// AccountConfig describes a single mail account with its IMAP
// connection parameters.
type AccountConfig struct {
	// Name is a short identifier used in logging (e.g., "personal",
	// "work"). Required.
	Name string `yaml:"name"`

	// IMAP configures the IMAP connection.
	IMAP IMAPConfig `yaml:"imap"`

	// Mailbox is the mailbox the idlewatch/fetchattach drivers operate
	// on. Default: INBOX.
	Mailbox string `yaml:"mailbox"`
}

// IMAPConfig holds IMAP server connection parameters.
type IMAPConfig struct {
	// Host is the IMAP server hostname (e.g., "imap.gmail.com").
	Host string `yaml:"host"`

	// Port is the IMAP server port. Default: 993 (IMAPS).
	Port int `yaml:"port"`

	// Username is the IMAP login username (typically the email address).
	Username string `yaml:"username"`

	// Password is the IMAP login password. Supports environment
	// variable expansion via the config loader (e.g., ${IMAP_PASSWORD}).
	Password string `yaml:"password"`

	// TLS controls whether to use TLS for the connection. Default:
	// true. Set to false only for port 143 plaintext connections (not
	// recommended).
	TLS bool `yaml:"tls"`

	// MaxLiteralSize caps the octets a single FETCH literal may
	// declare. Zero means unbounded (spec §5's open question resolved
	// by this option).
	MaxLiteralSize int64 `yaml:"max_literal_size"`
}

// Configured reports whether at least one account has the minimum
// required IMAP configuration (host and username).
func (c Config) Configured() bool {
	for _, a := range c.Accounts {
		if a.IMAP.Host != "" && a.IMAP.Username != "" {
			return true
		}
	}
	return false
}

// Load reads configuration from a YAML file, expands environment
// variables, applies defaults for any unset fields, and validates the
// result. After Load returns successfully, all fields are usable
// without additional nil/empty checks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${IMAP_PASSWORD}). This is a
	// convenience for container deployments; the recommended approach
	// is to put values directly in the config file.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
// Called automatically by Load. After this, callers can read any
// field without checking for empty strings or zero values.
func (c *Config) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	for i := range c.Accounts {
		if c.Accounts[i].IMAP.Port == 0 {
			c.Accounts[i].IMAP.Port = 993
		}
		// TLS defaults to true unless the port is 143 (plaintext
		// convention).
		if !c.Accounts[i].IMAP.TLS && c.Accounts[i].IMAP.Port != 143 {
			c.Accounts[i].IMAP.TLS = true
		}
		if c.Accounts[i].Mailbox == "" {
			c.Accounts[i].Mailbox = "INBOX"
		}
	}
}

// Validate checks that the configuration is internally consistent. It
// runs after ApplyDefaults, so it can assume defaults are populated.
// Returns an error describing the first problem found, or nil.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		if a.Name == "" {
			return fmt.Errorf("accounts[%d].name must not be empty", i)
		}
		if names[a.Name] {
			return fmt.Errorf("accounts[%d].name %q is a duplicate", i, a.Name)
		}
		names[a.Name] = true

		if a.IMAP.Host == "" {
			return fmt.Errorf("accounts[%d] (%s): imap.host is required", i, a.Name)
		}
		if a.IMAP.Username == "" {
			return fmt.Errorf("accounts[%d] (%s): imap.username is required", i, a.Name)
		}
		if a.IMAP.Port < 1 || a.IMAP.Port > 65535 {
			return fmt.Errorf("accounts[%d] (%s): imap.port %d out of range (1-65535)", i, a.Name, a.IMAP.Port)
		}
	}
	return nil
}

// Account returns the account with the given name, or ok=false if none
// matches.
func (c *Config) Account(name string) (AccountConfig, bool) {
	for _, a := range c.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return AccountConfig{}, false
}

// Default returns a default configuration with an empty account list.
// All defaults are already applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
