// Package system provides the production clock and identifier source.
package system

import (
	"time"

	"github.com/google/uuid"
)

// UTCClock reports wall-clock time in UTC.
type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator issues random (v4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
