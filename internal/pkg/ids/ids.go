package ids

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Length is the fixed length of every generated image id.
const Length = ulid.EncodedSize

// New returns a lowercase ULID. The Crockford base32 alphabet makes it safe
// as a storage key path segment.
func New() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return strings.ToLower(id.String())
}

// IsValid reports whether value looks like an id produced by New.
func IsValid(value string) bool {
	if len(value) != Length {
		return false
	}
	_, err := ulid.ParseStrict(strings.ToUpper(value))
	return err == nil
}
