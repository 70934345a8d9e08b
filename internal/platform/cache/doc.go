// Package cache provides the byte-oriented response cache shared by the HTTP
// layer. MemoryCache serves a single process; RedisCache is used when several
// instances must see the same entries and invalidations.
package cache
