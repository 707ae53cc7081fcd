// Package config loads typed configuration structs from environment
// variables, with optional values supplied through a local .env file.
//
// Configuration structs declare their environment bindings with `env`
// tags; parsing is delegated to github.com/caarlos0/env. The .env file
// is read at most once per process and only fills variables that are
// not already set in the environment.
//
// # Usage
//
//	var cfg sweep.Config
//	config.MustLoad(&cfg)
package config
