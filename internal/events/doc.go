// Package events carries notifications about committed catalog changes.
//
// Services emit a CatalogEvent after each successful category or movie
// mutation. Handlers react without the services knowing about them:
// CacheInvalidationHandler clears cached GET responses and
// ImageCleanupHandler deletes poster files a movie no longer references.
package events
