package store

import (
	"fmt"
	"log/slog"
)

// Supported backends.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Open opens the named backend at path and wraps it in a Store.
// For badger, path is a directory.
func Open(driver, path string, logger *slog.Logger) (*Store, error) {
	switch driver {
	case DriverSQLite, "":
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case DriverBadger:
		kv, err := OpenBadger(BadgerConfig{Path: path, SyncWrites: true, Logger: logger})
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
