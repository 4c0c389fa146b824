package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate key")

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

type sqlStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

func reposFor(ext sqlx.ExtContext) Repos {
	return Repos{
		Products:     NewProductRepository(ext),
		Applications: NewApplicationRepository(ext),
		Collaterals:  NewCollateralRepository(ext),
	}
}

func (s *sqlStore) Repos() Repos { return reposFor(s.db) }

func (s *sqlStore) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqlStore) WithinApplicationTx(ctx context.Context, applicationID uuid.UUID, fn func(r Repos, app *domain.LoanApplication) error) error {
	return s.WithinTx(ctx, func(r Repos) error {
		// lock the application row up-front to prevent races on collateral_value
		app, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, app)
	})
}

func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func forUpdate(ext sqlx.ExtContext) string {
	if ext.DriverName() == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
