// Package config loads and validates picstash configuration from YAML
// files, PICSTASH_-prefixed environment variables, and CLI flags, in
// ascending order of precedence.
package config
