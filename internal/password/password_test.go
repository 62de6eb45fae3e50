package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$v=19$"))
	assert.NotContains(t, h, "s3cret")

	ok, err := Verify("s3cret", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformed(t *testing.T) {
	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=18$m=1,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=19$m=x$AAAA$AAAA",
		"$argon2id$v=19$m=1,t=1,p=1$!!$AAAA",
		"$argon2id$v=19$m=1024,t=0,p=1$AAAA$AAAA",
		"$argon2id$v=19$m=1024,t=1,p=0$AAAA$AAAA",
		"$argon2id$v=19$m=0,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=19$m=1024,t=1,p=1$AAAA$",
	} {
		_, err := Verify("pw", h)
		assert.ErrorIs(t, err, ErrMalformedHash, h)
	}
}
