// Package config loads runtime configuration for the tripquote CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally read from a .env file in the working
//     directory (see loadEnv).
//  3. Optional JSON file selected via flags: -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database
//	-l string   master library URL
//	-t string   itinerary templates URL
//	-s int      sync staleness window (hours)
//	-g string   consultant name printed on proposals
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "24h"
// or integer nanoseconds:
//
//	{
//	  "database_path": "tripquote.db",
//	  "library_url": "https://gist.githubusercontent.com/.../raw/lib.json",
//	  "sync_interval": "24h",
//	  "agency_name": "Simrik Adventures",
//	  "s3_endpoint": "http://127.0.0.1:9000"
//	}
//
// Empty JSON values leave the earlier value in place.
package config
