// Package confloader provides configuration loading mechanism.
//
// It wraps koanf to layer configuration sources:
//
//  1. Command-line flags
//  2. Environment variables (SHURLTY_*)
//  3. Configuration file (YAML)
//  4. Default values
//
// It also provides an fsnotify-based Watcher used to observe files that
// other processes may rewrite, such as the session state file.
package confloader
