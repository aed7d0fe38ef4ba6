package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine(verify VerifyFunc, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/staff", AuthRequired(verify), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c)})
	})
	return r
}

func verifier(role string) VerifyFunc {
	return func(token string) (int64, string, error) {
		if token != "good" {
			return 0, "", errors.New("invalid or expired token")
		}
		return 7, role, nil
	}
}

func TestAuthAndRoles(t *testing.T) {
	cases := []struct {
		name   string
		header string
		role   string
		want   int
	}{
		{"missing header", "", "gate", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "gate", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "gate", http.StatusUnauthorized},
		{"wrong role", "Bearer good", "reception", http.StatusForbidden},
		{"allowed", "bearer good", "Gate", http.StatusOK},
	}
	for _, tc := range cases {
		r := newEngine(verifier(tc.role), "gate", "manager")
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: status %d want %d body %s", tc.name, w.Code, tc.want, w.Body.String())
		}
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := newEngine(verifier("gate"), "gate")
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id: got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("generated request id should be a uuid, got %q", got)
	}
}
