package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates a random UUIDv4 string. Used for user IDs and JWT token IDs,
// where the API contract promises a GUID.
func New() string {
	return uuid.NewString()
}

// NewSortable generates a ULID string. ULIDs are lexicographically sortable
// by creation time and safe for use as DynamoDB partition keys.
func NewSortable() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
