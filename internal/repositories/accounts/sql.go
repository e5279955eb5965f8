package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/dbx"
	"github.com/dmitrijs2005/mrtrade/internal/models"
)

// sqlQueries holds the dialect-specific statements of a SQL backend.
type sqlQueries struct {
	get    string
	exists string
	insert string
	list   string
}

// sqlRepository is the database/sql implementation shared by the SQLite
// and PostgreSQL backends.
type sqlRepository struct {
	db                *sql.DB
	q                 sqlQueries
	isUniqueViolation func(error) bool
}

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.Email, &a.FullName, &a.Username, &a.Phone, &a.Country, &a.PasswordHash)
	return a, err
}

func (r *sqlRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, r.q.get, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *sqlRepository) Exists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, r.db, email)
}

func (r *sqlRepository) exists(ctx context.Context, db dbx.DBTX, email string) (bool, error) {
	var found bool
	if err := db.QueryRowContext(ctx, r.q.exists, email).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// Create checks and inserts inside one transaction. A unique violation
// raised by a concurrent writer is reported as ErrorAlreadyExists too.
func (r *sqlRepository) Create(ctx context.Context, account *models.Account) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		found, err := r.exists(ctx, tx, account.Email)
		if err != nil {
			return err
		}
		if found {
			return common.ErrorAlreadyExists
		}

		_, err = tx.ExecContext(ctx, r.q.insert,
			account.Email, account.FullName, account.Username, account.Phone, account.Country, account.PasswordHash)
		return err
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.ErrorAlreadyExists
	case r.isUniqueViolation != nil && r.isUniqueViolation(err):
		return common.ErrorAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *sqlRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return out, nil
}

func (r *sqlRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}
