// Package binding owns one editor widget instance on a retained surface and
// keeps it in step with external configuration: service endpoint, language,
// server options, highlighted range and execution flow.
//
// Setters never fail. Transport problems reach the host through the
// ServerError and ConnectionChange handlers.
package binding
