/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/recordconv/codec"
	"github.com/suparena/recordconv/record"
)

// Config is the setup-time document binding entity types to their
// namespace and set name, the default expiration policy, and the
// DynamoDB table used by the ddb repository.
//
//	namespaces:
//	  test:
//	    sets:
//	      VersionedDocument: docs
//	      Comment: comments
//	defaultExpiration: never
//	dynamodb:
//	  table: recordconv-test
//	  region: us-east-1
type Config struct {
	Namespaces        map[string]Namespace `yaml:"namespaces"`
	DefaultExpiration ExpirationSetting    `yaml:"defaultExpiration"`
	DynamoDB          *DynamoDBConfig      `yaml:"dynamodb"`
}

// Namespace maps entity names to set names within one namespace.
type Namespace struct {
	Sets map[string]string `yaml:"sets"`
}

// DynamoDBConfig locates the table backing the ddb repository.
// Credentials come from the environment, not the document.
type DynamoDBConfig struct {
	Table  string `yaml:"table"`
	Region string `yaml:"region"`
}

// ExpirationSetting is a record.Expiration parsed from either the
// literal "never" or a non-negative second count.
type ExpirationSetting struct {
	exp record.Expiration
	set bool
}

// Value returns the parsed expiration; an absent setting is never-expire.
func (e ExpirationSetting) Value() record.Expiration {
	if !e.set {
		return record.NeverExpire
	}
	return e.exp
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *ExpirationSetting) UnmarshalYAML(node *yaml.Node) error {
	e.set = true
	if node.Value == "never" || node.Value == "" {
		e.exp = record.NeverExpire
		return nil
	}
	n, err := strconv.ParseInt(node.Value, 10, 32)
	if err != nil {
		return fmt.Errorf("defaultExpiration: expected \"never\" or a second count, got %q", node.Value)
	}
	if n < 0 {
		return fmt.Errorf("defaultExpiration: second count must be non-negative, got %d", n)
	}
	e.exp = record.Expiration(n)
	return nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// DotEnv loads a .env overlay into the process environment if one is
// present. Missing files are not an error.
func DotEnv() {
	_ = godotenv.Load()
}

// Validate checks structural consistency: at least one namespace, no
// empty set names, and no entity bound in more than one namespace.
func (c *Config) Validate() error {
	if len(c.Namespaces) == 0 {
		return fmt.Errorf("config declares no namespaces")
	}
	seen := make(map[string]string)
	for nsName, ns := range c.Namespaces {
		for entity, set := range ns.Sets {
			if set == "" {
				return fmt.Errorf("namespace %q: entity %q has an empty set name", nsName, entity)
			}
			if prev, dup := seen[entity]; dup {
				return fmt.Errorf("entity %q bound in namespaces %q and %q", entity, prev, nsName)
			}
			seen[entity] = nsName
		}
	}
	return nil
}

// Binding returns the namespace and set name configured for an entity.
func (c *Config) Binding(entityName string) (namespace, set string, err error) {
	for nsName, ns := range c.Namespaces {
		if s, ok := ns.Sets[entityName]; ok {
			return nsName, s, nil
		}
	}
	return "", "", fmt.Errorf("no namespace/set binding for entity %q", entityName)
}

// BindCodec assembles an EntityCodec for T from the configured
// binding and default expiration. Descriptor and registry validation
// run inside NewEntityCodec, so misconfiguration surfaces here, at
// startup.
func BindCodec[T any](cfg *Config, desc *codec.Descriptor[T], fields *codec.FieldCodec) (*codec.EntityCodec[T], error) {
	ns, set, err := cfg.Binding(desc.Name)
	if err != nil {
		return nil, err
	}
	return codec.NewEntityCodec(desc, fields, ns, set,
		codec.WithDefaultExpiration[T](cfg.DefaultExpiration.Value()))
}

// CodecBinder is one deferred BindCodec call, built with Binder.
type CodecBinder func(cfg *Config) error

// Binder wraps a BindCodec call for ValidateAll, storing the assembled
// codec through out on success.
func Binder[T any](desc *codec.Descriptor[T], fields *codec.FieldCodec, out **codec.EntityCodec[T]) CodecBinder {
	return func(cfg *Config) error {
		ec, err := BindCodec(cfg, desc, fields)
		if err != nil {
			return err
		}
		*out = ec
		return nil
	}
}

// ValidateAll assembles every binding in one startup pass and returns
// the first failure, so an unbound entity, an incomplete descriptor or
// a one-directional converter set is caught before any conversion runs.
func (c *Config) ValidateAll(binders ...CodecBinder) error {
	for _, b := range binders {
		if err := b(c); err != nil {
			return err
		}
	}
	return nil
}
