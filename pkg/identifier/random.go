package identifier

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Default random-segment parameters.
const (
	DefaultLength    = 6
	DefaultCharset   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultSeparator = "_"
)

// RandomString returns a string of the given length drawn uniformly from
// charset using the platform CSPRNG. Zero or negative length falls back
// to DefaultLength; an empty charset falls back to DefaultCharset.
func RandomString(length int, charset string) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if charset == "" {
		charset = DefaultCharset
	}

	// Index runes, not bytes, so multi-byte charsets stay intact.
	runes := []rune(charset)
	max := big.NewInt(int64(len(runes)))
	out := make([]rune, length)
	for i := range out {
		// rand.Int is uniform over [0, len); no modulo bias.
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("identifier: reading random source: %w", err)
		}
		out[i] = runes[n.Int64()]
	}
	return string(out), nil
}

// GenerateUUID returns a standard random (version 4) UUID. It is a free
// function with no dependency on any Service instance, so packages that
// only need opaque unique strings can use it without a registry.
func GenerateUUID() string {
	return uuid.NewString()
}
