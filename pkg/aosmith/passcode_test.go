package aosmith

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPasscodeRoundTrip(t *testing.T) {
	pairs := []struct {
		email    string
		password string
	}{
		{"user@example.com", "hunter2"},
		{"user+tag@example.com", "p@ss word!"},
		{"someone@example.org", `quotes " and braces {}`},
		{"unicode@example.com", "pässwörd"},
		{"", ""},
	}

	for _, pair := range pairs {
		passcode := buildPasscode(pair.email, pair.password)
		email, password, err := decodePasscode(passcode)
		require.NoError(t, err, "decoding passcode for %q", pair.email)
		assert.Equal(t, pair.email, email)
		assert.Equal(t, pair.password, password)
	}
}

func TestBuildPasscodeEncoding(t *testing.T) {
	passcode := buildPasscode("a@b.c", "pw")

	decoded, err := base64.StdEncoding.DecodeString(passcode)
	require.NoError(t, err)

	// The base64 layer must wrap the percent-encoded JSON document, with
	// spaces as %20 rather than '+'.
	assert.Equal(t, `%7B%22email%22%3A%22a%40b.c%22%2C%22password%22%3A%22pw%22%7D`, string(decoded))

	withSpace := buildPasscode("a@b.c", "p w")
	decoded, err = base64.StdEncoding.DecodeString(withSpace)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "%20")
	assert.NotContains(t, string(decoded), "+")
}
