// Package config provides CLI configuration for shurlty-cli.
//
//   - spec.go: CLIConfig struct (~/.shurlty/cli.yaml)
//   - loader.go: layered loading, validation and saving
//
// Sources are applied in order, later ones winning: defaults, the YAML
// file, SHURLTY_* environment variables, command-line flags.
package config
