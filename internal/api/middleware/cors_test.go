package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantAllowed string
	}{
		{"no origin header", []string{"https://app.example.com"}, http.MethodGet, "", false, http.StatusOK, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example.com", false, http.StatusOK, "*"},
		{"empty list allows all", nil, http.MethodGet, "https://any.example.com", false, http.StatusOK, "*"},
		{"listed origin", []string{"https://app.example.com/"}, http.MethodGet, "https://app.example.com", false, http.StatusOK, "https://app.example.com"},
		{"unlisted origin", []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com", false, http.StatusOK, ""},
		{"preflight", []string{"*"}, http.MethodOptions, "https://app.example.com", true, http.StatusNoContent, "*"},
		{"unlisted preflight", []string{"https://app.example.com"}, http.MethodOptions, "https://evil.example.com", true, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/movies", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rr := httptest.NewRecorder()

			CORS(tt.origins)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight && tt.wantStatus == http.StatusNoContent {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}
