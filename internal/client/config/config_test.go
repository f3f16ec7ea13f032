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

var envKeys = []string{
	"FARMILY_GATE_ENDPOINT", "FARMILY_GATE_SECRET", "FARMILY_GATE_TIMEOUT",
	"FARMILY_DATABASE_PATH", "FARMILY_LOG_FILE", "FARMILY_LOG_LEVEL",
	"FARMILY_METRICS_ENABLED", "FARMILY_BACKUP_BUCKET", "FARMILY_BACKUP_REGION",
	"FARMILY_BACKUP_ENDPOINT", "FARMILY_BACKUP_PREFIX",
	"FARMILY_BACKUP_ACCESS_KEY", "FARMILY_BACKUP_SECRET_KEY",
}

// clearEnv unsets every FARMILY_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "https://gate.farmily.example/server.php", c.GateEndpoint)
	assert.Equal(t, 15*time.Second, c.GateTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "farmily.db", filepath.Base(c.DatabasePath))
	assert.Equal(t, "farmily.log", filepath.Base(c.LogFile))
	assert.Empty(t, c.Backup.Bucket)
	assert.Equal(t, "farmily", c.Backup.Prefix)
}

func TestLoad_NoSources(t *testing.T) {
	clearEnv(t)

	cfg, err := load(nil, "")
	require.NoError(t, err)
	if diff := cmp.Diff(defaults(), *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONOverlaysOnlyGivenFields(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "farmily.json", `{
  "gate_endpoint": "https://json.example/gate",
  "gate_timeout": "5s",
  "metrics_enabled": true,
  "backup": {"bucket": "herd", "region": "eu-west-1"}
}`)

	cfg, err := load([]string{"-c", path}, "")
	require.NoError(t, err)

	want := defaults()
	want.GateEndpoint = "https://json.example/gate"
	want.GateTimeout = 5 * time.Second
	want.MetricsEnabled = true
	want.Backup.Bucket = "herd"
	want.Backup.Region = "eu-west-1"

	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "farmily.json", `{"gate_endpoint": "https://json.example", "log_level": "warn", "gate_secret": "json-secret"}`)
	t.Setenv("FARMILY_GATE_ENDPOINT", "https://env.example")
	t.Setenv("FARMILY_LOG_LEVEL", "error")
	t.Setenv("FARMILY_BACKUP_ACCESS_KEY", "AKIA")

	cfg, err := load([]string{"-config=" + path, "-l", "debug", "-unknown", "x"}, "")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.GateEndpoint, "env beats json")
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "json-secret", cfg.GateSecret, "json beats defaults")
	assert.Equal(t, "AKIA", cfg.Backup.AccessKey)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dotenv := writeFile(t, ".env", "FARMILY_GATE_SECRET=from-dotenv\nFARMILY_GATE_TIMEOUT=3s\n")
	t.Setenv("FARMILY_GATE_TIMEOUT", "7s")

	cfg, err := load(nil, dotenv)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.GateSecret)
	assert.Equal(t, 7*time.Second, cfg.GateTimeout)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)

	_, err := load(nil, filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoad_Flags(t *testing.T) {
	clearEnv(t)

	cfg, err := load([]string{"-e", "https://flag.example", "-t", "2s", "-d", "/tmp/x.db", "-metrics=true"}, "")
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.GateEndpoint)
	assert.Equal(t, 2*time.Second, cfg.GateTimeout)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, "")
	require.ErrorContains(t, err, "failed to read config file")

	bad := writeFile(t, "bad.json", `{"gate_timeout": "soon"}`)
	_, err = load([]string{"-c", bad}, "")
	require.ErrorContains(t, err, "failed to parse config file")

	t.Setenv("FARMILY_GATE_TIMEOUT", "later")
	_, err = load(nil, "")
	require.ErrorContains(t, err, "failed to read environment")
	require.NoError(t, os.Unsetenv("FARMILY_GATE_TIMEOUT"))

	_, err = load([]string{"-t", "nope"}, "")
	require.Error(t, err)
}
