package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"ingest_mode": "fixture",
		"ingest_delay": "250ms",
		"render_timeout": "30s",
		"cors_origins": ["http://localhost:3000"],
		"verbose": true
	}`

	cfg, err := LoadConfig(writeConfig(t, "config.json", content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "fixture", cfg.IngestMode)
	require.NotNil(t, cfg.IngestDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.IngestDelay.Std())
	assert.Equal(t, 30*time.Second, cfg.RenderTimeout.Std())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_JSONNumericDelayIsMilliseconds(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.json", `{"ingest_delay": 0}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.IngestDelay)
	assert.Equal(t, time.Duration(0), cfg.Delay())
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := `
port: 8181
ingest_mode: generative
ingest_delay: 0s
chrome_path: /usr/bin/chromium
session_ttl: 30m
cors_origins:
  - https://example.com
  - https://admin.example.com
`
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "generative", cfg.IngestMode)
	require.NotNil(t, cfg.IngestDelay)
	assert.Equal(t, time.Duration(0), cfg.Delay())
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL.Std())
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yml", "session_ttl: forever\n"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":           "7000",
		"INGEST_MODE":    "fixture",
		"INGEST_DELAY":   "100",
		"CHROME_PATH":    "/opt/chrome",
		"RENDER_TIMEOUT": "45s",
		"SESSION_TTL":    "1h",
		"CORS_ORIGINS":   "https://a.example, https://b.example,",
	}
	cfg := Config{Port: 8080, IngestMode: "generative"}

	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "fixture", cfg.IngestMode)
	assert.Equal(t, 100*time.Millisecond, cfg.Delay())
	assert.Equal(t, "/opt/chrome", cfg.ChromePath)
	assert.Equal(t, 45*time.Second, cfg.RenderTimeout.Std())
	assert.Equal(t, time.Hour, cfg.SessionTTL.Std())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestApplyEnv_UnsetLeavesFields(t *testing.T) {
	cfg := Config{Port: 8080, ChromePath: "/bin/chrome"}
	require.NoError(t, cfg.ApplyEnv(func(string) string { return "" }))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/bin/chrome", cfg.ChromePath)
	assert.Nil(t, cfg.IngestDelay)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"PORT", "eighty", "invalid PORT"},
		{"INGEST_DELAY", "soon", "invalid INGEST_DELAY"},
		{"RENDER_TIMEOUT", "x", "invalid RENDER_TIMEOUT"},
		{"SESSION_TTL", "1 day", "invalid SESSION_TTL"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var cfg Config
			err := cfg.ApplyEnv(func(k string) string {
				if k == tt.key {
					return tt.value
				}
				return ""
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	var empty Config
	assert.NoError(t, empty.Validate())
}

func TestValidate_InvalidValues(t *testing.T) {
	negative := Duration(-time.Second)

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"port too large", Config{Port: 70000}, "port must be between"},
		{"negative port", Config{Port: -1}, "port must be between"},
		{"unknown mode", Config{IngestMode: "ocr"}, "unknown ingest_mode"},
		{"negative delay", Config{IngestDelay: &negative}, "ingest_delay cannot be negative"},
		{"negative render timeout", Config{RenderTimeout: negative}, "render_timeout cannot be negative"},
		{"negative ttl", Config{SessionTTL: negative}, "session_ttl cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	zero := Duration(0)
	cfg := Config{
		Port:        9000,
		IngestDelay: &zero,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "generative", merged.IngestMode)
	assert.Equal(t, time.Duration(0), merged.Delay(), "explicit zero delay must survive the merge")
	assert.Equal(t, 60*time.Second, merged.RenderTimeout.Std())
	assert.Equal(t, 2*time.Hour, merged.SessionTTL.Std())
	assert.Equal(t, []string{"*"}, merged.CORSOrigins)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 8080, IngestMode: "fixture"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "fixture", merged.IngestMode)
	assert.Nil(t, merged.IngestDelay)
	assert.Equal(t, 1500*time.Millisecond, merged.Delay())
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
