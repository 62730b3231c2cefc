// Package dbprep prepares the backing stores: it installs and
// removes the database schema and clears the cache.  Both the
// storage package and the prepare-storage command drive it.
package dbprep

import (
	"fmt"
)

// EnsureSchema brings the database schema up to date.  It is safe
// to call against an already prepared database.
func EnsureSchema() error {
	if err := SchemaUp(); err != nil {
		return fmt.Errorf("Couldn't install schema: %v", err)
	}
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get final schema version: %v", err)
	}
	if version == 0 {
		return fmt.Errorf("Database schema still at version 0, shouldn't be.")
	}
	return nil
}

// RemoveSchema tears the database schema down, dropping the
// stored grids with it.
func RemoveSchema() error {
	version, err := SchemaVersion()
	if err != nil {
		return fmt.Errorf("Couldn't get initial schema version: %v", err)
	}
	if version > 0 {
		if err := SchemaDown(); err != nil {
			return fmt.Errorf("Couldn't remove tables: %v", err)
		}
	}
	return nil
}

// ReinitializeAll wipes the cache and the database and rebuilds
// the schema from scratch.
func ReinitializeAll() error {
	// clear cache
	if err := ClearCache(); err != nil {
		return fmt.Errorf("Couldn't clear cache: %v", err)
	}
	// clear database
	if err := RemoveSchema(); err != nil {
		return fmt.Errorf("Couldn't clear database: %v", err)
	}
	// rebuild the schema
	if err := EnsureSchema(); err != nil {
		return fmt.Errorf("Couldn't prepare database: %v", err)
	}
	return nil
}
