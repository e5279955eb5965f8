package accounts

import (
	"database/sql"
	"strings"
)

// SQLiteRepository stores accounts in the "accounts" table of a SQLite
// database opened with the modernc.org/sqlite driver.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{
		db: db,
		q: sqlQueries{
			get: `SELECT email, full_name, username, phone, country, password_hash
			      FROM accounts WHERE email = ?`,
			exists: `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = ?)`,
			insert: `INSERT INTO accounts (email, full_name, username, phone, country, password_hash)
			         VALUES (?, ?, ?, ?, ?, ?)`,
			list: `SELECT email, full_name, username, phone, country, password_hash
			       FROM accounts ORDER BY email`,
		},
		isUniqueViolation: func(err error) bool {
			return strings.Contains(err.Error(), "UNIQUE constraint failed")
		},
	}}
}
