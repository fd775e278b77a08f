// Package otel bridges the engine's internal metrics into an OpenTelemetry
// meter as observable instruments. The engine stays dependency-free; this
// adapter pulls snapshots on every collection cycle.
package otel
