// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file, with
// defaults taken from the `default` struct tags of every section. Keys map to
// variables by upper casing and replacing dots: data.override is DATA_OVERRIDE.
//
// Sections:
//   - data: data root, override document, output directory, default group and
//     skill blacklist
//   - server: HTTP port, API key and graph cache lifetime
//   - storage: MinIO/S3 endpoint, credentials, bucket and object prefix
//   - database: MySQL export database
//   - log: level and format
//
//	cfg, err := config.LoadConfig(".")
package config
