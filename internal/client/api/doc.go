// Package api is the REST transport of the CourseHub client.
//
// # Overview
//
// Client lists the backend operations the front end consumes. HTTPClient
// implements it over net/http with JSON bodies. Authenticated calls take
// their bearer token from a TokenSource, which refreshes an expired token
// before the request goes out. A 401 answer triggers one forced refresh and
// one retry.
//
// # Error Handling
//
// Non-2xx answers become *HTTPError. Callers match conditions with
// errors.Is: ErrUnauthorized for 401/403 and failed refreshes, ErrUnavailable
// for transport failures, timeouts and 502/503/504.
//
// # Tracing
//
// Every request runs in an OpenTelemetry client span and carries an
// X-Request-ID header plus the propagated trace context.
package api
