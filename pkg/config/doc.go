// Package config loads configuration from environment variables and ini-style
// settings maps.
//
// Environment loading wraps github.com/joho/godotenv and
// github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment,
//     later files overriding earlier ones, never overriding variables that
//     are already set.
//   - Load parses the environment into a struct using `env` tags and caches
//     the result per type, so each configuration struct is parsed once.
//   - MustLoadEnv and MustLoad panic instead of returning errors.
//   - ResetCache and ForceReload drop cached values, mostly for tests.
//
// Settings helpers cover flat key/value settings such as those read from an
// ini file:
//
//   - ParseValue turns "42", "yes", "none" into 42, true, nil.
//   - Children returns the settings below a dotted parent key with
//     environment references expanded.
//
// # Usage
//
//	type ServerConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
//	sanitize := config.Children(settings, "sanitize")
//	if on, _ := sanitize["link_protection"].(bool); on {
//	    // ...
//	}
//
// # Errors
//
//   - ErrParsingConfig – env vars could not be parsed into the struct.
//   - ErrInvalidConfigType – the cached value has an unexpected type.
//   - ErrNilPointer – nil pointer passed to Load or MustLoad.
package config
