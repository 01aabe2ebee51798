package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Match(t *testing.T) {
	r := NewUserRouter()

	tests := []struct {
		raw      string
		expected Kind
	}{
		{raw: "POST /users HTTP/1.1\r\n\r\n{}", expected: KindCreate},
		{raw: "POST /users/1 HTTP/1.1\r\n\r\n{}", expected: KindCreate},
		{raw: "GET /users/1 HTTP/1.1\r\n\r\n", expected: KindGet},
		{raw: "GET /users/ HTTP/1.1\r\n\r\n", expected: KindGet},
		{raw: "GET /users HTTP/1.1\r\n\r\n", expected: KindList},
		{raw: "GET /usersabc HTTP/1.1\r\n\r\n", expected: KindList},
		{raw: "PUT /users/1 HTTP/1.1\r\n\r\n{}", expected: KindUpdate},
		{raw: "PUT /users HTTP/1.1\r\n\r\n{}", expected: KindNotFound},
		{raw: "DELETE /users/1 HTTP/1.1\r\n\r\n", expected: KindDelete},
		{raw: "DELETE /users HTTP/1.1\r\n\r\n", expected: KindNotFound},
		{raw: "PATCH /users/1 HTTP/1.1\r\n\r\n", expected: KindNotFound},
		{raw: "get /users HTTP/1.1\r\n\r\n", expected: KindNotFound},
		{raw: "GET  /users HTTP/1.1\r\n\r\n", expected: KindNotFound},
		{raw: "GET /", expected: KindNotFound},
		{raw: "GET", expected: KindNotFound},
		{raw: "", expected: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Match(tt.raw))
		})
	}
}

func TestRouter_OrderMatters(t *testing.T) {
	// With the list route first, item reads are shadowed
	r := New(
		Route{Method: "GET", PathPrefix: "/users", Kind: KindList},
		Route{Method: "GET", PathPrefix: "/users/", Kind: KindGet},
	)
	assert.Equal(t, KindList, r.Match("GET /users/1 HTTP/1.1"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "create", KindCreate.String())
	assert.Equal(t, "get", KindGet.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "update", KindUpdate.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}
