// Package server provides HTTP routing and middleware for the shelf web front end.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestLogger] tags every request with an id (X-Request-ID), logs method, path, status and duration.
//   - [RateLimit] rejects requests with 429 once the shared token bucket is empty.
//   - [Recover] turns a handler panic into a 500 response.
package server
