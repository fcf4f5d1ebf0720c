package history

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SessionKey returns hex(HMAC-SHA256(secret, sessionID)).
// Rows are keyed by this value so raw cookie ids never reach the database.
func SessionKey(secret []byte, sessionID string) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(sessionID))
	return hex.EncodeToString(h.Sum(nil))
}

// tsLayout is fixed-width so stored timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000Z"

// timestamp formats t the way rows store it.
func timestamp(t time.Time) string { return t.UTC().Format(tsLayout) }

// parseTimestamp reverses timestamp; malformed values yield the zero time.
func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(tsLayout, s)
	return t
}
