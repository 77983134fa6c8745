package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:3000/api", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "signkeeper.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoad_NoSources(t *testing.T) {
	cfg := load(nil)
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://sign.example.com/api", "-t", "10", "-d", "/tmp/s.db"},
			expected: &Config{
				APIBaseURL: "https://sign.example.com/api", RequestTimeout: 10 * time.Second,
				DatabasePath: "/tmp/s.db", LogLevel: "info", LogFormat: "text",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "x.json", "-d", "other.db"},
			expected: &Config{
				APIBaseURL: DefaultAPIBaseURL, RequestTimeout: DefaultRequestTimeout,
				DatabasePath: "other.db", LogLevel: "info", LogFormat: "text",
			},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondTimeoutWhenUnset(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond
	parseFlags(cfg, nil)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, ok := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if ok {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Run("variables overlay defaults", func(t *testing.T) {
		t.Setenv("SIGNKEEPER_API_URL", "https://env.example/api")
		t.Setenv("SIGNKEEPER_TIMEOUT", "45s")
		t.Setenv("SIGNKEEPER_LOG_LEVEL", "debug")

		cfg := defaults()
		parseEnv(cfg, nil)

		assert.Equal(t, "https://env.example/api", cfg.APIBaseURL)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	})

	t.Run("dotenv file from -e", func(t *testing.T) {
		unsetEnv(t, "SIGNKEEPER_DB", "SIGNKEEPER_LOG_FORMAT")
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("SIGNKEEPER_DB=from-dotenv.db\nSIGNKEEPER_LOG_FORMAT=json\n"), 0o600))

		cfg := defaults()
		parseEnv(cfg, []string{"-e", path})

		assert.Equal(t, "from-dotenv.db", cfg.DatabasePath)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("explicit missing dotenv panics", func(t *testing.T) {
		cfg := defaults()
		require.Panics(t, func() {
			parseEnv(cfg, []string{"-e", filepath.Join(t.TempDir(), "missing.env")})
		})
	})

	t.Run("bad duration panics", func(t *testing.T) {
		t.Setenv("SIGNKEEPER_TIMEOUT", "soon")
		cfg := defaults()
		require.Panics(t, func() { parseEnv(cfg, nil) })
	})
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("SIGNKEEPER_API_URL", "https://env.example/api")
	t.Setenv("SIGNKEEPER_DB", "env.db")

	path := writeTempJSON(t, "", "", map[string]any{
		"database_path":   "json.db",
		"request_timeout": "5s",
	})

	cfg := load([]string{"-c", path, "-a", "https://flag.example/api"})

	assert.Equal(t, "https://flag.example/api", cfg.APIBaseURL)
	assert.Equal(t, "json.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
