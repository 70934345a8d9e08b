// Package task runs background work on an in-memory queue drained by a fixed
// pool of workers. Catalog event handlers that touch slow resources, such as
// stale image removal, run here so they never hold up an HTTP response.
package task
