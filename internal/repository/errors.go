package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"reparto_tracker/internal/apperr"
)

const uniqueViolation = "23505"

// isUniqueViolation recognises a duplicate key error from gorm's translated errors
// or from either postgres driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return true
	}
	return false
}

// translate maps a datastore error onto the apperr taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *apperr.ValidationError
		te *apperr.TransitionError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &te):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	}
	return apperr.Persistence(op, err)
}
