// Package store defines the persistence contracts for categories, movies and
// users. Implementations live under internal/platform; services depend only
// on the interfaces declared here.
package store
