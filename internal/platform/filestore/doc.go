// Package filestore saves uploaded movie posters on the local filesystem and
// deletes them again when a movie's image is replaced or the movie removed.
package filestore
