// Package testdb provides helpers for tests that need a real PostgreSQL database.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database and run in parallel:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        categories := postgres.NewPostgresCategoryStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped unless DATABASE_URL or MOVIES_TEST_DB_URL is set.
package testdb
