// Package config loads typed configuration structs from environment
// variables using caarlos0/env, with optional .env file support via godotenv.
//
// Each package that needs configuration declares its own Config struct with
// `env:` tags and loads it at startup with Load or MustLoad. Parsed configs
// are cached per type for the lifetime of the process, which keeps
// configuration immutable after initialization.
package config
