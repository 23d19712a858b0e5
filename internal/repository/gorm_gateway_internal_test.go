package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceResetErr(t *testing.T) {
	assert.NoError(t, sequenceResetErr("users", nil))
	assert.NoError(t, sequenceResetErr("users", errors.New("no such table: sqlite_sequence")))

	locked := errors.New("database table is locked")
	err := sequenceResetErr("users", locked)
	require.ErrorIs(t, err, locked)
	assert.EqualError(t, err, "reset sequence of users: database table is locked")

	// a missing user table is not the tolerated case
	assert.Error(t, sequenceResetErr("users", errors.New("no such table: users")))
}
