// Package config loads keyspace registry configuration from YAML files and
// environment variables.
//
// A configuration file looks like:
//
//	hosts: [10.0.0.1, 10.0.0.2]
//	port: 9042
//	consistency: LOCAL_QUORUM
//	connect_timeout: 10s
//	keyspaces:
//	  default: app_main
//	  audit: app_audit
//
// Keyspace declaration order is preserved. The list form is accepted as well:
//
//	keyspaces:
//	  - {alias: default, name: app_main}
//	  - {alias: audit, name: app_audit}
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/keyspace/adapter/cql"
	"github.com/arloliu/keyspace/types"
)

const (
	// DefaultPort is the CQL native protocol port.
	DefaultPort = 9042
	// DefaultConsistency is the consistency used when none is configured.
	DefaultConsistency = "LOCAL_QUORUM"
	// DefaultConnectTimeout bounds opening one keyspace session.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultTimeout bounds a single query round trip.
	DefaultTimeout = 5 * time.Second
)

// Config is the registry configuration.
type Config struct {
	// Hosts are the initial contact points.
	Hosts []string `yaml:"hosts" validate:"required,min=1,dive,required,hostname_port|hostname_rfc1123|ip"`

	// Port is the CQL native protocol port.
	Port int `yaml:"port" validate:"gte=1,lte=65535"`

	// Async is accepted for compatibility with existing configuration files.
	// It has no effect on session creation.
	Async bool `yaml:"async"`

	// Keyspaces maps aliases to physical keyspace names, in declaration order.
	Keyspaces Keyspaces `yaml:"keyspaces" validate:"required,min=1,dive"`

	// Username and Password enable password authentication when Username is set.
	Username string `yaml:"username"`
	Password string `yaml:"password" validate:"required_with=Username"`

	// Consistency is the default consistency level name, e.g. "LOCAL_QUORUM".
	Consistency string `yaml:"consistency" validate:"consistency"`

	// ConnectTimeout bounds opening one keyspace session.
	ConnectTimeout time.Duration `yaml:"connect_timeout" validate:"gt=0"`

	// Timeout bounds a single query round trip.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// KeyspaceEntry is one alias to keyspace pair.
type KeyspaceEntry struct {
	Alias string `yaml:"alias" validate:"required"`
	Name  string `yaml:"name" validate:"required,cql_identifier"`
}

// Keyspaces is an ordered list of keyspace entries.
type Keyspaces []KeyspaceEntry

// DefaultConfig returns a Config with defaults applied and no hosts or keyspaces.
func DefaultConfig() *Config {
	return &Config{
		Port:           DefaultPort,
		Consistency:    DefaultConsistency,
		ConnectTimeout: DefaultConnectTimeout,
		Timeout:        DefaultTimeout,
	}
}

// UnmarshalYAML accepts either a mapping (alias: name) or a sequence of
// {alias, name} objects. Mapping order is preserved.
func (k *Keyspaces) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Keyspaces, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if valueNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("keyspaces: line %d: value for %q must be a keyspace name", valueNode.Line, keyNode.Value)
			}
			out = append(out, KeyspaceEntry{Alias: keyNode.Value, Name: valueNode.Value})
		}
		*k = out

		return nil
	case yaml.SequenceNode:
		var entries []KeyspaceEntry
		if err := node.Decode(&entries); err != nil {
			return fmt.Errorf("keyspaces: %w", err)
		}
		*k = entries

		return nil
	}

	return fmt.Errorf("keyspaces: line %d: expected a mapping or a list", node.Line)
}

// Table converts the configured keyspaces to an immutable KeyspaceTable.
func (c *Config) Table() (types.KeyspaceTable, error) {
	entries := make([]types.Keyspace, len(c.Keyspaces))
	for i, e := range c.Keyspaces {
		entries[i] = types.Keyspace{Alias: e.Alias, Name: e.Name}
	}

	return types.NewKeyspaceTable(entries...)
}

// ConsistencyLevel returns the parsed default consistency level.
func (c *Config) ConsistencyLevel() cql.Consistency {
	level, ok := cql.ParseConsistency(c.Consistency)
	if !ok {
		return cql.LocalQuorum
	}

	return level
}

// Redacted returns a copy of the configuration with the password masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Hosts = append([]string(nil), c.Hosts...)
	out.Keyspaces = append(Keyspaces(nil), c.Keyspaces...)
	if out.Password != "" {
		out.Password = "******"
	}

	return &out
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	// Catches duplicate aliases.
	if _, err := c.Table(); err != nil {
		return err
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("cql_identifier", func(fl validator.FieldLevel) bool {
		return types.ValidIdentifier(fl.Field().String())
	})
	_ = v.RegisterValidation("consistency", func(fl validator.FieldLevel) bool {
		_, ok := cql.ParseConsistency(fl.Field().String())
		return ok
	})

	return v
}
