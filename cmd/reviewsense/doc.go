// Command reviewsense serves and exercises the review sentiment analyzer.
//
//	reviewsense serve                 run the HTTP API
//	reviewsense analyze "Great phone" classify text from arguments or stdin
//	reviewsense inspect               show artifact availability and shapes
//	reviewsense bench                 measure latency and check determinism
//
// Every command reads the same configuration: defaults, an optional TOML file
// (--config or ./reviewsense.toml) and REVIEWSENSE_* environment variables.
package main
