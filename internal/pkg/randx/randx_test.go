package randx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessCode_Format(t *testing.T) {
	req := require.New(t)

	for i := 0; i < 100; i++ {
		code, err := AccessCode()
		req.NoError(err)
		req.Len(code, CodeLength)
		req.True(IsValidAccessCode(code), "generated code %q fails its own validation", code)
	}
}

func TestTimestampCode_Format(t *testing.T) {
	req := require.New(t)

	code := TimestampCode()

	req.Len(code, CodeLength)
	req.True(IsValidAccessCode(code))
}

func TestIsValidAccessCode(t *testing.T) {
	req := require.New(t)

	req.True(IsValidAccessCode("ABC123"))
	req.True(IsValidAccessCode("XXXXXX"))

	req.False(IsValidAccessCode(""))
	req.False(IsValidAccessCode("ABC12"))
	req.False(IsValidAccessCode("ABC1234"))
	req.False(IsValidAccessCode("abc123"))
	req.False(IsValidAccessCode("ABC-12"))
	req.False(IsValidAccessCode("ABC 12"))
}

func TestIsValidSlug(t *testing.T) {
	req := require.New(t)

	req.True(IsValidSlug("abc"))
	req.True(IsValidSlug("design-sync"))
	req.True(IsValidSlug("Room42"))
	req.True(IsValidSlug("aaaaaaaaaaaaaaaaaaaa")) // 20 chars

	req.False(IsValidSlug(""))
	req.False(IsValidSlug("ab"))
	req.False(IsValidSlug("aaaaaaaaaaaaaaaaaaaaa")) // 21 chars
	req.False(IsValidSlug("has space"))
	req.False(IsValidSlug("under_score"))
	req.False(IsValidSlug("slash/name"))
}
