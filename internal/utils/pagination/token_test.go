package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{
		EntryDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 3, 1, 9, 15, 2, 987654321, time.FixedZone("GMT+1", 3600)),
		EntryID:   "8f7e5c1a-0d2b-4c55-9a51-0f3c2a9e1b77",
	}

	token := c.Encode()
	require.NotEmpty(t, token)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	got, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, c.EntryDate.Equal(got.EntryDate))
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, c.EntryID, got.EntryID)
}

func TestDecodeCursorErrors(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	_, err := DecodeCursor("not base64!")
	assert.ErrorContains(t, err, "encoding")

	_, err = DecodeCursor(enc("2025-03-01T00:00:00Z|2025-03-01T00:00:00Z"))
	assert.ErrorContains(t, err, "expected")

	_, err = DecodeCursor(enc("2025-03-01T00:00:00Z|2025-03-01T00:00:00Z|"))
	assert.ErrorContains(t, err, "expected")

	_, err = DecodeCursor(enc("yesterday|2025-03-01T00:00:00Z|je-1"))
	assert.ErrorContains(t, err, "entry date")

	_, err = DecodeCursor(enc("2025-03-01T00:00:00Z|later|je-1"))
	assert.ErrorContains(t, err, "creation time")
}
