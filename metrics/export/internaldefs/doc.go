// Package internaldefs holds the shared metric definition table for the
// Prometheus and OpenTelemetry exporters. It is not a public API.
package internaldefs
