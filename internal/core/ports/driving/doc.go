// Package driving holds the ports the CLI, TUI and MCP adapters call into.
//
// The interactive search reactor, the one-shot search service, settings and
// result actions are all declared here and implemented in
// internal/core/services.
package driving
