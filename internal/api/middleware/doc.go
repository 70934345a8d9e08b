// Package middleware provides the HTTP middleware applied to the API routes:
// trace IDs, request logging, CORS, JWT authentication with role checks,
// and the response cache for public catalog reads.
package middleware
