// Package middleware holds the cross-cutting HTTP middleware: request IDs,
// request-scoped logging, and Prometheus metrics.
package middleware

// contextKey is a private type for context values set by this package.
type contextKey string
