// Package driving provides interfaces for application entry points (primary/inbound ports).
// The HTTP, MCP and CLI boundaries depend on these, never on services directly.
package driving
