// Package output provides output formatting for shurlty-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables built from structs, slices and maps
//   - json.go, yaml.go: machine-readable output for scripting
//   - spinner.go: progress animation while a request is outstanding
package output
