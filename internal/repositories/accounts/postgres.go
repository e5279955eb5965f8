package accounts

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository stores accounts in PostgreSQL through the pgx stdlib
// driver.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{
		db: db,
		q: sqlQueries{
			get: `SELECT email, full_name, username, phone, country, password_hash
			      FROM accounts WHERE email = $1`,
			exists: `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`,
			insert: `INSERT INTO accounts (email, full_name, username, phone, country, password_hash)
			         VALUES ($1, $2, $3, $4, $5, $6)`,
			list: `SELECT email, full_name, username, phone, country, password_hash
			       FROM accounts ORDER BY email`,
		},
		isUniqueViolation: isPgUniqueViolation,
	}}
}

// uniqueViolationCode is the SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
