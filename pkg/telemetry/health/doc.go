// Package health provides liveness and readiness probes.
//
// Components register named check functions with the Checker; the
// readiness endpoint runs them all and reports 503 when any fails. The
// liveness endpoint only verifies the process is serving requests.
package health
