package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// PasswordEnv overrides Config.AppPassword when set.
const PasswordEnv = "TEMPLATE_SWITCHER_APP_PASSWORD"

// Defaults applied by Parse and Default.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultHighlightStyle = "monokai"
)

// ErrNoSource is returned by Validate when neither a site nor a fixture is set.
var ErrNoSource = errors.New("no site_url or fixture configured")

// Config represents ~/.template-switcher/config.yaml.
type Config struct {
	SiteURL        string        `yaml:"site_url,omitempty"`
	Username       string        `yaml:"username,omitempty"`
	AppPassword    string        `yaml:"app_password,omitempty"`
	Fixture        string        `yaml:"fixture,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	HighlightStyle string        `yaml:"highlight_style,omitempty"`
	Active         *Active       `yaml:"active,omitempty"`
}

// Active is the persisted active selection.
type Active struct {
	Kind string `yaml:"kind"` // "template" or "template-part"
	ID   int64  `yaml:"id"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Timeout:        DefaultTimeout,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// Parse parses config.yaml bytes into a Config.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}
	if cfg.Active != nil && cfg.Active.Kind != "template" && cfg.Active.Kind != "template-part" {
		return Config{}, fmt.Errorf("parsing config: unknown active kind %q", cfg.Active.Kind)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config at path. A missing file yields defaults. The
// password environment variable takes precedence over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if pw := os.Getenv(PasswordEnv); pw != "" {
		cfg.AppPassword = pw
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, data)
}

// SaveActive replaces the active key in the file at path and leaves every
// other key as written. Defaults and environment overrides are not saved.
func SaveActive(path string, active *Active) error {
	var doc yaml.Node
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := Parse(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%s: parsing config: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("reading config: %w", err)
	}

	// Empty document: start a fresh mapping.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: parsing config: expected mapping at top level", path)
	}

	var value yaml.Node
	if err := value.Encode(active); err != nil {
		return fmt.Errorf("encoding active selection: %w", err)
	}
	replaced := false
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == "active" {
			root.Content[i+1] = &value
			replaced = true
			break
		}
	}
	if !replaced {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "active"}
		root.Content = append(root.Content, key, &value)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, out)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the config names a record source.
func (c Config) Validate() error {
	if c.SiteURL == "" && c.Fixture == "" {
		return ErrNoSource
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.AppPassword != "" {
		c.AppPassword = "********"
	}
	return c
}
