// Package config loads runtime configuration for the Farmily CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). Files live under the
//     XDG data and state homes.
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed FARMILY_, after an optional ./.env file
//     is loaded. Variables already set win over .env.
//  4. Command-line flags.
//
// # JSON schema
//
//	{
//	  "gate_endpoint": "https://gate.farmily.example/server.php",
//	  "gate_secret": "...",
//	  "gate_timeout": "15s",
//	  "database_path": "/var/lib/farmily/farmily.db",
//	  "log_level": "debug",
//	  "metrics_enabled": true,
//	  "backup": {"bucket": "herd", "endpoint": "http://127.0.0.1:9000"}
//	}
//
// # Environment
//
//	FARMILY_GATE_ENDPOINT, FARMILY_GATE_SECRET, FARMILY_GATE_TIMEOUT,
//	FARMILY_DATABASE_PATH, FARMILY_LOG_FILE, FARMILY_LOG_LEVEL,
//	FARMILY_METRICS_ENABLED, FARMILY_BACKUP_BUCKET, FARMILY_BACKUP_REGION,
//	FARMILY_BACKUP_ENDPOINT, FARMILY_BACKUP_PREFIX,
//	FARMILY_BACKUP_ACCESS_KEY, FARMILY_BACKUP_SECRET_KEY
package config
