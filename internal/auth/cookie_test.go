package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ayush/members-site/internal/auth"
)

func TestCookieSignRoundTrip(t *testing.T) {
	signer := auth.NewCookieSigner("test-secret")

	value := signer.Sign("some-session-id")
	sid, ok := signer.Verify(value)
	require.True(t, ok)
	require.Equal(t, "some-session-id", sid)
}

func TestCookieVerifyRejectsTampering(t *testing.T) {
	signer := auth.NewCookieSigner("test-secret")
	other := auth.NewCookieSigner("another-secret")

	value := signer.Sign("some-session-id")

	cases := map[string]string{
		"swapped session id": "other-session-id" + value[len("some-session-id"):],
		"foreign secret":     other.Sign("some-session-id"),
		"no signature":       "some-session-id",
		"empty value":        "",
		"bare separator":     ".",
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := signer.Verify(v)
			require.False(t, ok)
		})
	}
}
