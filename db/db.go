package db

import (
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	once sync.Once
	conn *gorm.DB
	err  error
)

// Connect opens the shared gorm handle exactly once, however many callers
// race to initialize it. An empty URL falls back to a local sqlite file.
// TranslateError turns driver-specific uniqueness violations into
// gorm.ErrDuplicatedKey so repositories can branch on them.
func Connect(databaseURL string) (*gorm.DB, error) {
	once.Do(func() {
		cfg := &gorm.Config{TranslateError: true}
		if databaseURL != "" {
			conn, err = gorm.Open(postgres.Open(databaseURL), cfg)
			return
		}
		conn, err = gorm.Open(sqlite.Open("todokit.db"), cfg)
	})
	return conn, err
}
