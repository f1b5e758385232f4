package store

import (
	"database/sql"
	"time"
)

// Store wraps the sqlite database holding subscriptions, the durable
// weather cache, the query log and per-user statistics.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

func New(db *sql.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}
