// Package api handles incoming HTTP requests for the movie catalog: request
// decoding and validation, calls into the services, and translation of
// domain results and errors into JSON responses.
package api
