package directory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode}
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", pgErr)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))

	v := nullable("x")
	if assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}

	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "x", deref(v))
}
