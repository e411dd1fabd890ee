// Package pagination encodes keyset cursors for listings ordered newest first.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position of the last row of a page. EntryID breaks ties between
// rows sharing both timestamps.
type Cursor struct {
	EntryDate time.Time
	CreatedAt time.Time
	EntryID   string
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := strings.Join([]string{
		c.EntryDate.UTC().Format(timeFormat),
		c.CreatedAt.UTC().Format(timeFormat),
		c.EntryID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by Cursor.Encode.
func DecodeCursor(token string) (Cursor, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor encoding: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, errors.New("malformed cursor: expected entry date, creation time and entry id")
	}

	var c Cursor
	if c.EntryDate, err = time.Parse(timeFormat, parts[0]); err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor entry date: %w", err)
	}
	if c.CreatedAt, err = time.Parse(timeFormat, parts[1]); err != nil {
		return Cursor{}, fmt.Errorf("malformed cursor creation time: %w", err)
	}
	c.EntryID = parts[2]
	return c, nil
}
