package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvHosts       = "CASSANDRA_HOSTS"
	EnvPort        = "CASSANDRA_PORT"
	EnvUsername    = "CASSANDRA_USERNAME"
	EnvPassword    = "CASSANDRA_PASSWORD"
	EnvConsistency = "CASSANDRA_CONSISTENCY"
)

// Load reads configuration from a YAML file, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(bytes.NewReader(data))
}

// Parse reads configuration from r, applies environment overrides
// and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides to cfg.
func applyEnvironmentOverrides(cfg *Config) error {
	if hosts := os.Getenv(EnvHosts); hosts != "" {
		cfg.Hosts = cfg.Hosts[:0]
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.Hosts = append(cfg.Hosts, h)
			}
		}
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		cfg.Port = p
	}
	if user := os.Getenv(EnvUsername); user != "" {
		cfg.Username = user
	}
	if password := os.Getenv(EnvPassword); password != "" {
		cfg.Password = password
	}
	if consistency := os.Getenv(EnvConsistency); consistency != "" {
		cfg.Consistency = strings.ToUpper(consistency)
	}

	return nil
}
