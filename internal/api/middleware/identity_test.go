package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	var gotName, gotFirst string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName, gotOK = GetUserName(r.Context())
		gotFirst = FirstName(r.Context())
	})

	t.Run("headers present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Name", "  Maya Chen ")
		req.Header.Set("X-User-Email", "maya@example.com")

		Identity(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, gotOK)
		assert.Equal(t, "Maya Chen", gotName)
		assert.Equal(t, "Maya", gotFirst)
	})

	t.Run("headers absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		Identity(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, gotOK)
		assert.Equal(t, "", gotFirst)
	})

	t.Run("single word name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Name", "maya")

		Identity(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "maya", gotFirst)
	})
}
