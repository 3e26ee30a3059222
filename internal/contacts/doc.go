// Package contacts provides an HTTP client for the contacts record store.
//
// # Endpoints
//
//   - GET    /api/contacts               list, optional group and blacklisted query params
//   - GET    /api/contacts/groups        distinct group names
//   - POST   /api/contacts               create (server may upsert)
//   - PUT    /api/contacts/{id}          update
//   - DELETE /api/contacts/{id}          delete, success only on 204
//   - PATCH  /api/contacts/{id}/blacklist  set the blacklist flag
//
// Paths are appended to the configured base URL, which may carry a prefix.
//
// # Errors
//
// Every failure is a *RemoteError carrying the HTTP status (zero for transport
// failures) and a message. The message prefers a JSON "message" field, then the
// raw response text, then "HTTP {status}". Delete failures always use the raw
// text. Nothing is retried; callers decide what to surface.
//
// # Request tracing
//
// Each request carries an X-Request-ID header and is logged at debug level
// through the configured zap logger.
package contacts
