// Package otel exports goSession metrics through the OpenTelemetry
// metric API as pull-style observable counters.
package otel
