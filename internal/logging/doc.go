// Package logging builds the slog loggers used by the service and the CLI.
//
// Loggers are constructed once in main and injected; nothing here installs a
// process-wide default. Records logged with a context that carries a request
// ID get a request_id attribute.
package logging
