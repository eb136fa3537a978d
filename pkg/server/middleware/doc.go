// Package middleware provides HTTP middleware for the Meridian server:
// request ID propagation, structured request logging, and panic recovery.
//
// The middleware chain is assembled by the server package; handlers access
// per-request values through the context accessors defined here.
package middleware
