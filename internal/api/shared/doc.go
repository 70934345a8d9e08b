// Package shared holds request decoding, response writing and request-scoped
// context helpers used by both the handlers and the middleware.
package shared
