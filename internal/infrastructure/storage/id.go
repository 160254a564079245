package storage

import (
	"crypto/rand"
	"fmt"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

const suffixLength = 7

// NewID generates a record identifier of the form
// {prefix}_{unixMillis}_{randomBase36Suffix}. Uniqueness rests on the
// timestamp plus the low collision probability of the suffix; the store
// performs no explicit uniqueness check.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randomSuffix(suffixLength))
}

// NewToken mints an opaque bearer token. It carries no signature and no
// expiry; it is accepted at face value wherever presented.
func NewToken() string {
	return fmt.Sprintf("local_user_token_%d_%s", time.Now().UnixMilli(), randomSuffix(suffixLength))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never fails on supported platforms; fall back to
	// a timestamp-derived suffix if it somehow does.
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%07d", time.Now().UnixNano()%1e7)
	}
	for i := range b {
		b[i] = base36[int(b[i])%len(base36)]
	}
	return string(b)
}
