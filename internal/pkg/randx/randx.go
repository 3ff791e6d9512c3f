/*
Package randx provides cryptographically secure random identifiers.

It generates the fixed-length access codes that gate private rooms and
validates the formats of codes and room slugs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

const (
	// CodeChars is the character set for access codes (uppercase alphanumeric).
	CodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CodeLength is the fixed length of an access code.
	CodeLength = 6
)

var (
	codeCharsLen = big.NewInt(int64(len(CodeChars)))

	// slugRegex bounds room names to 3-20 alphanumeric or hyphen characters.
	slugRegex = regexp.MustCompile(`^[a-zA-Z0-9-]{3,20}$`)
)

// AccessCode generates a CodeLength-character uppercase alphanumeric code
// using crypto/rand.
func AccessCode() (string, error) {
	result := make([]byte, CodeLength)

	for i := 0; i < CodeLength; i++ {
		num, err := rand.Int(rand.Reader, codeCharsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for access code: %v", err)
		}

		result[i] = CodeChars[num.Int64()]
	}

	return string(result), nil
}

// TimestampCode derives an access code from the current time: the last
// CodeLength characters of the millisecond timestamp in base 36, uppercased
// and left-padded with 'X'. Used as the fallback when random generation
// keeps colliding.
func TimestampCode() string {
	ts := strings.ToUpper(big.NewInt(time.Now().UnixMilli()).Text(36))

	if len(ts) > CodeLength {
		ts = ts[len(ts)-CodeLength:]
	}

	for len(ts) < CodeLength {
		ts = "X" + ts
	}

	return ts
}

// IsValidSlug reports whether name satisfies the room slug rules.
func IsValidSlug(name string) bool {
	return slugRegex.MatchString(name)
}

// IsValidAccessCode reports whether code has the exact access-code format.
func IsValidAccessCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(CodeChars, char) {
			return false
		}
	}

	return true
}
