// Package api is a typed client for the company-scoped disclosure backend.
//
// Every call is made under the caller's context, waits on a per-client rate
// limiter and carries the bearer token. POST requests carry a fresh
// Idempotency-Key. Non-2xx responses come back as *APIError with the response
// body attached so callers can log what the backend rejected.
package api
