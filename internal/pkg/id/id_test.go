package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsValidUUID(t *testing.T) {
	got := New()
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.NotEqual(t, New(), got)
}

func TestNewSortable_IsValidULID(t *testing.T) {
	got := NewSortable()
	_, err := ulid.Parse(got)
	require.NoError(t, err)
	assert.Len(t, got, 26)
}
