package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := Errf(KindConflict, "user already exists")
	assert.Equal(t, KindConflict, KindOf(err))

	wrapped := fmt.Errorf("signup: %w", err)
	assert.Equal(t, KindConflict, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("driver: connection reset")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestMessageOfHidesInternals(t *testing.T) {
	assert.Equal(t, "user already exists", MessageOf(Errf(KindConflict, "user already exists")))

	internal := Wrap(KindInternal, errors.New("pq: deadlock detected"), "insert user")
	assert.Equal(t, "internal server error", MessageOf(internal))
	assert.Equal(t, "internal server error", MessageOf(errors.New("raw driver error")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindInternal, cause, "store nonce")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store nonce")
	assert.Contains(t, err.Error(), "boom")
}
