// Package mocks provides centralized mock implementations for testing.
//
// Store and image store mocks are built on testify's mock.Mock so tests can
// set expectations and assert calls. Service, auth and emitter mocks use
// function fields with default return values:
//
//	movies := &mocks.MockMovieService{
//	    GetFn: func(ctx context.Context, id int64) (*domain.Movie, error) {
//	        return nil, store.ErrMovieNotFound
//	    },
//	}
//
// When adding a new mock to this package, create a file named after the
// interface being mocked and add a compile-time interface assertion.
package mocks
