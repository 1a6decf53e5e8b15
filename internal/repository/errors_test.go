package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"reparto_tracker/internal/apperr"
)

func TestTranslateUniqueViolation(t *testing.T) {
	for name, err := range map[string]error{
		"gorm": gorm.ErrDuplicatedKey,
		"pgx":  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
		"pq":   &pq.Error{Code: "23505"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, translate("create driver", err), apperr.ErrConflict)
		})
	}
}

func TestTranslateKeepsTaxonomy(t *testing.T) {
	te := &apperr.TransitionError{From: "delivered", To: "pending"}
	assert.Same(t, te, translate("set status", te))

	nf := apperr.NotFound("stop", 7)
	assert.ErrorIs(t, translate("set status", nf), apperr.ErrNotFound)

	var pe *apperr.PersistenceError
	err := translate("list routes", errors.New("connection reset"))
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "list routes", pe.Op)

	other := &pgconn.PgError{Code: "23503"}
	assert.ErrorAs(t, translate("create route", other), &pe)
}
