// Package config loads runtime configuration for the NoteHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml/.yml are decoded with yaml.v3, anything else as JSON.
//  3. Environment variables (NOTEHUB_*), after loading a .env file from the
//     working directory if one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the REST API (including the version prefix)
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//	-p int      default page size for searches
//
// # File schema
//
//	{
//	  "base_url": "http://localhost:8000/api/v1",
//	  "db_path": "notehub.db",
//	  "log_level": "info",
//	  "log_file": "",
//	  "per_page": 10,
//	  "http_timeout": "0s",
//	  "profile_cache_ttl": "5m",
//	  "export_dir": "downloads",
//	  "s3": {"bucket": "", "region": "", "prefix": "notes/"}
//	}
package config
