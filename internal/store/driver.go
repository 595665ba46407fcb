package store

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DriverFactory opens a gorm.Dialector for a DSN.
type DriverFactory func(dsn string) gorm.Dialector

var driverFactories = map[string]DriverFactory{
	"sqlite":   sqlite.Open,
	"postgres": postgres.Open,
}

// GetDialector resolves DATABASE_DRIVER (case-insensitive) to a dialector.
func GetDialector(driver, dsn string) (gorm.Dialector, error) {
	factory, ok := driverFactories[strings.ToLower(driver)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return factory(dsn), nil
}

// inMemorySQLite reports whether each pooled connection would open its own
// empty database.
func inMemorySQLite(driver, dsn string) bool {
	if !strings.EqualFold(driver, "sqlite") {
		return false
	}
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
