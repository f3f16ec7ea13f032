package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime settings for the Farmily CLI.
type Config struct {
	// GateEndpoint is the absolute URL of the remote gate.
	GateEndpoint string `split_words:"true"`
	// GateSecret is sent as the "p" query parameter.
	GateSecret  string        `split_words:"true"`
	GateTimeout time.Duration `split_words:"true"`

	DatabasePath string `split_words:"true"`

	LogFile  string `split_words:"true"`
	LogLevel string `split_words:"true"`

	// MetricsEnabled writes gate metrics to the log file on exit.
	MetricsEnabled bool `split_words:"true"`

	Backup BackupConfig `split_words:"true"`
}

// BackupConfig points at an S3-compatible bucket. Backups are disabled while
// Bucket is empty.
type BackupConfig struct {
	Bucket    string `split_words:"true"`
	Region    string `split_words:"true"`
	Endpoint  string `split_words:"true"`
	Prefix    string `split_words:"true"`
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GateEndpoint = "https://gate.farmily.example/server.php"
	c.GateSecret = ""
	c.GateTimeout = 15 * time.Second
	c.DatabasePath = filepath.Join(xdg.DataHome, "farmily", "farmily.db")
	c.LogFile = filepath.Join(xdg.StateHome, "farmily", "farmily.log")
	c.LogLevel = "info"
	c.MetricsEnabled = false
	c.Backup = BackupConfig{Prefix: "farmily"}
}

// LoadConfig constructs a Config from defaults, then the JSON file named by
// -c/-config, then the environment (after reading ./.env), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	return load(args, ".env")
}

func load(args []string, dotenv string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotenv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
