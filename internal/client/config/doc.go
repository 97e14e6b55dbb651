// Package config loads runtime configuration for the PetSwap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via flags: -c or -config.
//  3. Environment variables PETSWAP_API_URL, PETSWAP_DB, PETSWAP_TIMEOUT and
//     PETSWAP_LOG_LEVEL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the REST API
//	-db string    path of the local SQLite database
//	-t duration   request timeout
//	-l string     log level
//
// # File schema
//
// Durations are strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:10000",
//	  "database_path": ".petswap/client.db",
//	  "request_timeout": "10s"
//	}
package config
