// Package config defines the application's configuration structure and
// loading logic. Settings come from defaults, an optional config.yaml, and
// CHIRP_-prefixed environment variables, in increasing order of precedence,
// and are validated before use.
package config
