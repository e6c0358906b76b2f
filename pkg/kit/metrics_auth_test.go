package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"no header", "secret", "", http.StatusForbidden},
		{"wrong token", "secret", "Bearer nope", http.StatusForbidden},
		{"wrong scheme", "secret", "Basic secret", http.StatusForbidden},
		{"good token", "secret", "Bearer secret", http.StatusOK},
		{"endpoint closed", "", "Bearer ", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			MetricsAuth(tc.token)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
