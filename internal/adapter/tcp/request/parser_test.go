package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "raw-user-service/pkg/errors"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "request line", raw: "GET /users/5 HTTP/1.1\r\nHost: x\r\n\r\n", expected: "5"},
		{name: "no version", raw: "DELETE /users/12", expected: "12"},
		{name: "nested path", raw: "GET /users/7/extra HTTP/1.1\r\n\r\n", expected: "7"},
		{name: "non numeric", raw: "GET /users/abc HTTP/1.1\r\n\r\n", expected: "abc"},
		{name: "trailing slash skips to next word", raw: "GET /users/ HTTP/1.1\r\n\r\n", expected: "HTTP"},
		{name: "no id segment", raw: "GET /users", expected: ""},
		{name: "empty segment at end", raw: "GET /users/", expected: ""},
		{name: "no slash", raw: "garbage", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractID(tt.raw))
		})
	}
}

func TestExtractBody(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "body after headers",
			raw:      "POST /users HTTP/1.1\r\nContent-Type: application/json\r\n\r\n{\"name\":\"Ann\"}",
			expected: `{"name":"Ann"}`,
		},
		{name: "empty body", raw: "POST /users HTTP/1.1\r\n\r\n", expected: ""},
		{name: "last blank line wins", raw: "POST /users\r\n\r\nfirst\r\n\r\nsecond", expected: "second"},
		{name: "no blank line", raw: "POST /users HTTP/1.1\r\n", expected: ""},
		{name: "bare newlines are not a separator", raw: "POST /users\n\n{}", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBody(tt.raw))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int32(42), id)

	id, err = ParseID("+7")
	require.NoError(t, err)
	assert.Equal(t, int32(7), id)

	id, err = ParseID("-3")
	require.NoError(t, err)
	assert.Equal(t, int32(-3), id)

	for _, bad := range []string{"", "abc", "1.5", "2147483648", "12a"} {
		_, err := ParseID(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidID), bad)
	}
}
