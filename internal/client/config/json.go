package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/farmily/farmily/internal/flagx"
	"github.com/farmily/farmily/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so "15s" and integer nanoseconds are both accepted.
type JsonConfig struct {
	GateEndpoint   string         `json:"gate_endpoint"`
	GateSecret     string         `json:"gate_secret"`
	GateTimeout    timex.Duration `json:"gate_timeout"`
	DatabasePath   string         `json:"database_path"`
	LogFile        string         `json:"log_file"`
	LogLevel       string         `json:"log_level"`
	MetricsEnabled *bool          `json:"metrics_enabled"`
	Backup         struct {
		Bucket    string `json:"bucket"`
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		Prefix    string `json:"prefix"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"backup"`
}

// parseJson overlays cfg with the non-empty values of the JSON file given by
// -c or -config. Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.GateEndpoint, jc.GateEndpoint)
	setString(&cfg.GateSecret, jc.GateSecret)
	if jc.GateTimeout.Duration > 0 {
		cfg.GateTimeout = jc.GateTimeout.Duration
	}
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.MetricsEnabled != nil {
		cfg.MetricsEnabled = *jc.MetricsEnabled
	}

	setString(&cfg.Backup.Bucket, jc.Backup.Bucket)
	setString(&cfg.Backup.Region, jc.Backup.Region)
	setString(&cfg.Backup.Endpoint, jc.Backup.Endpoint)
	setString(&cfg.Backup.Prefix, jc.Backup.Prefix)
	setString(&cfg.Backup.AccessKey, jc.Backup.AccessKey)
	setString(&cfg.Backup.SecretKey, jc.Backup.SecretKey)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
