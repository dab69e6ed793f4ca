package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SMSACTIVATE_API_KEY",
	"SMSACTIVATE_BASE_URL",
	"SMSACTIVATE_PROTOCOL",
	"SMSACTIVATE_TIMEOUT",
	"SMSACTIVATE_RETRIES",
	"SMSACTIVATE_RATE_LIMIT",
	"SMSACTIVATE_RATE_BURST",
	"SMSACTIVATE_POLL_PERIOD",
	"SMSACTIVATE_POLL_ATTEMPTS",
	"SMSACTIVATE_LOG_LEVEL",
	"SMSACTIVATE_LOG_FILE",
	"SMSACTIVATE_METRICS_FILE",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMSACTIVATE_API_KEY", "abc123")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Client.APIKey)
	assert.Equal(t, "https://api.sms-activate.org/stubs/handler_api.php", cfg.Client.BaseURL)
	assert.Equal(t, "json", cfg.Client.Protocol)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 0, cfg.Client.Retries)
	assert.Equal(t, 0.0, cfg.Client.RateLimit)
	assert.Equal(t, 1, cfg.Client.RateBurst)
	assert.Equal(t, 5*time.Second, cfg.Poll.Period)
	assert.Equal(t, 10, cfg.Poll.Attempts)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.LogFile)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMSACTIVATE_API_KEY", "abc123")
	t.Setenv("SMSACTIVATE_BASE_URL", "http://localhost:8080/handler")
	t.Setenv("SMSACTIVATE_PROTOCOL", "TEXT")
	t.Setenv("SMSACTIVATE_TIMEOUT", "5s")
	t.Setenv("SMSACTIVATE_RETRIES", "2")
	t.Setenv("SMSACTIVATE_RATE_LIMIT", "0.5")
	t.Setenv("SMSACTIVATE_POLL_PERIOD", "2s")
	t.Setenv("SMSACTIVATE_POLL_ATTEMPTS", "12")
	t.Setenv("SMSACTIVATE_LOG_LEVEL", "debug")
	t.Setenv("SMSACTIVATE_METRICS_FILE", "/tmp/metrics.prom")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/handler", cfg.Client.BaseURL)
	assert.Equal(t, "text", cfg.Client.Protocol)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 2, cfg.Client.Retries)
	assert.Equal(t, 0.5, cfg.Client.RateLimit)
	assert.Equal(t, 2*time.Second, cfg.Poll.Period)
	assert.Equal(t, 12, cfg.Poll.Attempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/metrics.prom", cfg.MetricsFile)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SMSACTIVATE_API_KEY=from-file\nSMSACTIVATE_POLL_ATTEMPTS=3\n"), 0600))

	// godotenv sets process variables; drop them afterwards.
	t.Cleanup(func() {
		os.Unsetenv("SMSACTIVATE_API_KEY")
		os.Unsetenv("SMSACTIVATE_POLL_ATTEMPTS")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Client.APIKey)
	assert.Equal(t, 3, cfg.Poll.Attempts)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMSACTIVATE_API_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SMSACTIVATE_API_KEY=from-file\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Client.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing key", map[string]string{}, "api key is required"},
		{"bad protocol", map[string]string{"SMSACTIVATE_PROTOCOL": "xml"}, "protocol must be json or text"},
		{"bad timeout", map[string]string{"SMSACTIVATE_TIMEOUT": "soon"}, "invalid timeout"},
		{"zero timeout", map[string]string{"SMSACTIVATE_TIMEOUT": "0s"}, "timeout must be positive"},
		{"bad period", map[string]string{"SMSACTIVATE_POLL_PERIOD": "often"}, "invalid poll.period"},
		{"negative period", map[string]string{"SMSACTIVATE_POLL_PERIOD": "-1s"}, "poll period must not be negative"},
		{"zero attempts", map[string]string{"SMSACTIVATE_POLL_ATTEMPTS": "0"}, "poll attempts must be at least 1"},
		{"negative retries", map[string]string{"SMSACTIVATE_RETRIES": "-1"}, "retries must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.name != "missing key" {
				t.Setenv("SMSACTIVATE_API_KEY", "abc123")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(noEnvFile(t))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
