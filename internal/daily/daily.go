// Package daily picks the crossword of the day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// BoardIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % boards.
// It returns -1 when there are no boards to choose from.
func BoardIndex(date time.Time, salt string, boards int) int {
	if boards <= 0 {
		return -1
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(boards))
}
