package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalid(t *testing.T) {
	assert.NoError(t, Invalid(nil))

	var v Violations
	v.Add("stops", "at least one stop is required")
	err := Invalid(v)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Violations.Has("stops"))
	assert.Contains(t, err.Error(), "stops: at least one stop is required")
}

func TestPersistenceKeepsTaxonomy(t *testing.T) {
	nf := NotFound("route", 7)
	assert.Same(t, nf, Persistence("get route", nf))
	assert.True(t, errors.Is(nf, ErrNotFound))

	conflict := fmt.Errorf("create driver: %w", ErrConflict)
	assert.Same(t, conflict, Persistence("create driver", conflict))

	cause := errors.New("connection reset")
	err := Persistence("update stop", cause)
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "update stop", pe.Op)
	assert.True(t, errors.Is(err, cause))

	assert.NoError(t, Persistence("noop", nil))
}
