// Package service contains the catalog's use cases. It orchestrates the
// domain types and the store interfaces (internal/store), applies the
// transactional boundaries, and emits catalog events after each committed
// mutation.
//
// Services return sentinel errors from the domain, store and service packages,
// wrapped with %w, so the API layer can map them with errors.Is. Unexpected
// failures are wrapped in ServiceError.
package service
