// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a SQLite file (or ":memory:")
// from the application's configuration. The run history is the only consumer.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read a table's actual columns so callers
// can verify that a database they did not migrate themselves has the expected
// shape.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "reconcile_runs", "owner", "source")
package database
