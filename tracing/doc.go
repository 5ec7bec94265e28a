// Package tracing integrates OpenTelemetry with the docket services so that
// identifier allocation and artifact filesystem operations emit spans. All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can leave it uninitialised; spans are then no-ops.
package tracing
