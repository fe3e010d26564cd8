/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"dirpx.dev/drecord/kind"
	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"
)

// Config is the YAML form of mapper adjustments:
//
//	http:
//	  defaults:  {missing_name: 400}
//	  overrides: {empty: 400}
//	  prefixes:
//	    invalid_age: {record.age.range: 400}
//	grpc:
//	  defaults:  {missing_name: FAILED_PRECONDITION}
//	  prefixes:
//	    invalid_age: {record.age.empty: 3}
//
// Kind keys and reason prefixes are normalized like kind.Parse and
// reason.Parse. gRPC values may be numbers or UPPER_SNAKE code names.
type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	GRPC GRPCConfig `yaml:"grpc"`
}

// HTTPConfig holds HTTP status adjustments keyed by kind.
type HTTPConfig struct {
	Defaults  map[string]int            `yaml:"defaults"`
	Overrides map[string]int            `yaml:"overrides"`
	Prefixes  map[string]map[string]int `yaml:"prefixes"`
}

// GRPCConfig holds gRPC code adjustments keyed by kind.
type GRPCConfig struct {
	Defaults  map[string]GRPCCode            `yaml:"defaults"`
	Overrides map[string]GRPCCode            `yaml:"overrides"`
	Prefixes  map[string]map[string]GRPCCode `yaml:"prefixes"`
}

// GRPCCode is a gRPC status code that decodes from either its number or its
// name ("OUT_OF_RANGE").
type GRPCCode codes.Code

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *GRPCCode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("mapper: line %d: grpc code must be a scalar", node.Line)
	}
	var raw []byte
	if _, err := strconv.ParseUint(node.Value, 10, 32); err == nil {
		raw = []byte(node.Value)
	} else {
		raw = []byte(strconv.Quote(node.Value))
	}
	var code codes.Code
	if err := code.UnmarshalJSON(raw); err != nil {
		return fmt.Errorf("mapper: line %d: %w", node.Line, err)
	}
	*c = GRPCCode(code)
	return nil
}

// LoadConfig decodes a YAML Config from r and turns it into Options.
// Unknown YAML fields are rejected. Empty input yields no options.
func LoadConfig(r io.Reader) ([]Option, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("mapper: decode config: %w", err)
	}
	return cfg.Options()
}

// Options converts the configuration into Options. Keys are visited in
// sorted order so the result is deterministic.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	for _, key := range sortedKeys(c.HTTP.Defaults) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithHTTPDefault(k, c.HTTP.Defaults[key]))
	}
	for _, key := range sortedKeys(c.HTTP.Overrides) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithHTTPOverride(k, c.HTTP.Overrides[key]))
	}
	for _, key := range sortedKeys(c.HTTP.Prefixes) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		rules := c.HTTP.Prefixes[key]
		for _, p := range sortedKeys(rules) {
			opts = append(opts, WithHTTPPrefix(k, p, rules[p]))
		}
	}

	for _, key := range sortedKeys(c.GRPC.Defaults) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithGRPCDefault(k, int(c.GRPC.Defaults[key])))
	}
	for _, key := range sortedKeys(c.GRPC.Overrides) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithGRPCOverride(k, int(c.GRPC.Overrides[key])))
	}
	for _, key := range sortedKeys(c.GRPC.Prefixes) {
		k, err := parseKind(key)
		if err != nil {
			return nil, err
		}
		rules := c.GRPC.Prefixes[key]
		for _, p := range sortedKeys(rules) {
			opts = append(opts, WithGRPCPrefix(k, p, int(rules[p])))
		}
	}
	return opts, nil
}

func parseKind(s string) (kind.Kind, error) {
	k, err := kind.Parse(s)
	if err != nil {
		return kind.Unset, fmt.Errorf("mapper: config kind %q: %w", s, err)
	}
	return k, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
