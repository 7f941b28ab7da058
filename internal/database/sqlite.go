package database

import (
	"database/sql"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	db   *sql.DB
	once sync.Once
)

// Config holds database configuration
type Config struct {
	Path string
}

// Init opens the sqlite database and applies the connection pragmas. Safe to
// call more than once; only the first call opens anything.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		db, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return
		}

		// Timeline reads fan out per technician-day while the feeds write in
		// batches; WAL lets readers proceed during a batch insert, and
		// busy_timeout covers writers queueing behind each other.
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA foreign_keys=ON",
		}
		for _, p := range pragmas {
			if _, err = db.Exec(p); err != nil {
				return
			}
		}

		// sqlite serializes writers regardless; a small pool is enough for
		// the concurrent timeline reads.
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(4)

		if err = db.Ping(); err != nil {
			return
		}

		log.Printf("[Database] Opened %s (WAL)", cfg.Path)
	})

	return err
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	if db == nil {
		log.Fatal("Database not initialized. Call Init() first.")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
