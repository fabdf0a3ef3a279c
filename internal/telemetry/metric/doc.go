// Package metric provides Prometheus metrics for shurlty-cli.
//
// The client keeps a private registry (never the global default) with:
//
//   - Outbound request counters and latency histograms
//   - Authorization failure counter
//   - Form submission outcomes
//
// Metrics are dumped in the Prometheus text format by the REPL
// `metrics` command.
package metric
