package id

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

var reID32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns exactly 32 lowercase hex characters (a UUIDv7 without separators),
// so ids sort roughly by creation time.
func NewID32() string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return hex.EncodeToString(u[:])
}

// IsID32 reports whether s looks like an id produced by NewID32.
func IsID32(s string) bool { return reID32.MatchString(s) }
