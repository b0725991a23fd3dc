package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the resolved connection settings for one invocation. It is
// read once at startup and never mutated afterwards.
type Config struct {
	// URL is the base address of the Satellite server, e.g. https://satellite.example.com
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// ConfigPathPattern optionally restricts which configuration file paths
	// are visible to the config workflows.
	ConfigPathPattern string `yaml:"configPathPattern"`
	SSHUser           string `yaml:"sshUser"`
	SSHPassword       string `yaml:"sshPassword"`
	SSHKeyPath        string `yaml:"sshKeyPath"`
	SSHKeyPassphrase  string `yaml:"sshKeyPassphrase"`
	// Timezone is the IANA zone the server reports package modification
	// dates in. Only the cleanup workflow depends on it.
	Timezone    string `yaml:"timezone"`
	RootAllowed bool   `yaml:"rootAllowed"`
	// LegacyUploadHeaders restores the hardcoded package metadata headers
	// sent by the original plugin instead of the values read from the RPM.
	LegacyUploadHeaders bool `yaml:"legacyUploadHeaders"`
}

func Parse(data []byte) (*Config, error) {
	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse the configuration: %w", err)
	}

	return &config, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file '%s': %w", path, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration file '%s': %w", path, err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("field 'url' must be defined")
	}
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("field 'url' is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("field 'url' must use the http or https scheme, got '%s'", parsed.Scheme)
	}

	if c.User == "" {
		return fmt.Errorf("field 'user' must be defined")
	}
	if c.Password == "" {
		return fmt.Errorf("field 'password' must be defined")
	}

	if c.ConfigPathPattern != "" {
		if _, err = regexp.Compile(c.ConfigPathPattern); err != nil {
			return fmt.Errorf("field 'configPathPattern' is not a valid regular expression: %w", err)
		}
	}

	if c.Timezone != "" {
		if _, err = time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("field 'timezone' is not a valid IANA zone: %w", err)
		}
	}

	if c.SSHKeyPath != "" {
		if _, err = os.Stat(c.SSHKeyPath); err != nil {
			return fmt.Errorf("field 'sshKeyPath' does not point to a readable file: %w", err)
		}
	}

	return nil
}

// RPCURL returns the XML-RPC API endpoint.
func (c *Config) RPCURL() string {
	return c.URL + "/rpc/api"
}

// PushURL returns the out-of-band package upload endpoint.
func (c *Config) PushURL() string {
	return c.URL + "/PACKAGE-PUSH"
}

// IsSSL reports whether the server is addressed over TLS.
func (c *Config) IsSSL() bool {
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "https"
}

// Location resolves the configured timezone, defaulting to the local one.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return location
}

// PathPattern returns the compiled config path filter, or nil when no
// filter is configured.
func (c *Config) PathPattern() *regexp.Regexp {
	if c.ConfigPathPattern == "" {
		return nil
	}
	pattern, err := Anchored(c.ConfigPathPattern)
	if err != nil {
		return nil
	}
	return pattern
}

// Anchored compiles expr so it only matches complete inputs, the matching
// discipline all pattern fields of the configuration share.
func Anchored(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + expr + `)\z`)
}
