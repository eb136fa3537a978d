// Package auth provides request authorization for the export endpoint.
//
// The export pipeline only ever sees the Authorizer interface — an opaque
// predicate over the incoming request. The concrete implementation
// extracts a session token from the meridian_session cookie or an
// Authorization bearer header and validates it against a token Validator.
//
// Two validators are provided:
//
//   - SessionStore: SQLite-backed sessions with SHA-256 token hashes and
//     expiry. Expired sessions are pruned on a cron schedule by Scheduler.
//   - FileValidator: a static token file (one "token user" pair per line),
//     optionally hot-reloaded on change for Kubernetes-style mounts.
package auth
