// Package config provides configuration loading for the candidate profile service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/candidate-profile/internal/ingestion"
	"github.com/jonathan/candidate-profile/internal/rendering"
	"github.com/jonathan/candidate-profile/internal/workflow"
)

// DefaultPort is used when neither the config file, PORT nor --port set one.
const DefaultPort = 8080

// Duration is a time.Duration that reads as a Go duration string ("1500ms", "2h")
// from both JSON and YAML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String implements fmt.Stringer.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v) * time.Millisecond)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the service configuration. Zero values mean "use the default".
type Config struct {
	Port          int       `json:"port,omitempty" yaml:"port,omitempty"`
	IngestMode    string    `json:"ingest_mode,omitempty" yaml:"ingest_mode,omitempty"`
	IngestDelay   *Duration `json:"ingest_delay,omitempty" yaml:"ingest_delay,omitempty"`
	ChromePath    string    `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	RenderTimeout Duration  `json:"render_timeout,omitempty" yaml:"render_timeout,omitempty"`
	SessionTTL    Duration  `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty"`
	CORSOrigins   []string  `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
	Verbose       bool      `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	delay := Duration(ingestion.DefaultDelay)
	return Config{
		Port:          DefaultPort,
		IngestMode:    string(ingestion.ModeGenerative),
		IngestDelay:   &delay,
		RenderTimeout: Duration(rendering.DefaultPDFTimeout),
		SessionTTL:    Duration(workflow.DefaultSessionTTL),
		CORSOrigins:   []string{"*"},
	}
}

// LoadConfig loads configuration from a JSON or YAML file.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv; unset or empty variables leave the field untouched.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := getenv("INGEST_MODE"); v != "" {
		c.IngestMode = v
	}
	if v := getenv("INGEST_DELAY"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid INGEST_DELAY: %w", err)
		}
		delay := Duration(d)
		c.IngestDelay = &delay
	}
	if v := getenv("CHROME_PATH"); v != "" {
		c.ChromePath = v
	}
	if v := getenv("RENDER_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RENDER_TIMEOUT: %w", err)
		}
		c.RenderTimeout = Duration(d)
	}
	if v := getenv("SESSION_TTL"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		c.SessionTTL = Duration(d)
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	switch ingestion.Mode(c.IngestMode) {
	case "", ingestion.ModeFixture, ingestion.ModeGenerative:
	default:
		return fmt.Errorf("unknown ingest_mode %q", c.IngestMode)
	}
	if c.IngestDelay != nil && *c.IngestDelay < 0 {
		return fmt.Errorf("ingest_delay cannot be negative")
	}
	if c.RenderTimeout < 0 {
		return fmt.Errorf("render_timeout cannot be negative")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session_ttl cannot be negative")
	}
	return nil
}

// MergeWithDefaults returns a new config with default values applied for any unset fields.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.IngestMode == "" {
		result.IngestMode = defaults.IngestMode
	}
	if result.IngestDelay == nil && defaults.IngestDelay != nil {
		delay := *defaults.IngestDelay
		result.IngestDelay = &delay
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.RenderTimeout == 0 {
		result.RenderTimeout = defaults.RenderTimeout
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if len(result.CORSOrigins) == 0 && len(defaults.CORSOrigins) > 0 {
		result.CORSOrigins = append([]string(nil), defaults.CORSOrigins...)
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// Delay returns the configured ingestion delay, or the default when unset.
func (c *Config) Delay() time.Duration {
	if c.IngestDelay == nil {
		return ingestion.DefaultDelay
	}
	return c.IngestDelay.Std()
}

// parseDuration accepts Go duration strings and bare integers as milliseconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
