package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes the file-backed settings with two-space indentation.
// Flag-only fields are left out. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	return c.ToYAMLWithHeader("")
}

// ToYAMLWithHeader is ToYAML with header and a blank line written first.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteString("\n\n")
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML decodes a config file. JSON is accepted as YAML. Keys that are
// not settings are rejected; keys that are absent stay zero so the result
// can be overlaid on another config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a copy that shares no slices with c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	for _, list := range []*[]string{&cp.Extensions, &cp.Disable, &cp.Transforms, &cp.Ignore} {
		*list = slices.Clone(*list)
	}
	return &cp
}
