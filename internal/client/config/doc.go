// Package config loads runtime configuration for the signkeeper terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: ".env" in the working directory, or the path given with
//     -e / -env. A missing default file is not an error.
//  3. Environment variables (see the env tags on Config).
//  4. Optional JSON file selected with -c or -config.
//  5. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the backend API, including the /api prefix
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://sign.example.com/api",
//	  "request_timeout": "30s",
//	  "database_path": "signkeeper.db",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
