package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/logging"
	"github.com/dmitrijs2005/petswap/internal/server/auth"
)

func TestRequireAuth(t *testing.T) {
	tokens := newTestTokens(t, func() time.Time { return testNow })
	valid, err := tokens.Issue(42)
	require.NoError(t, err)

	forger, err := auth.NewTokenManager([]byte("other-secret"), time.Hour, auth.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	forged, err := forger.Issue(42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantCode   int
		wantError  string
		wantReason string
	}{
		{name: "valid", header: "Bearer " + valid, wantCode: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantCode: http.StatusOK},
		{name: "missing", header: "", wantCode: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "scheme only", header: "Bearer", wantCode: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "blank token", header: "Bearer   ", wantCode: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "basic scheme", header: "Basic abc", wantCode: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "garbage", header: "Bearer abc.def", wantCode: http.StatusUnauthorized, wantError: "Invalid token", wantReason: "malformed"},
		{name: "forged", header: "Bearer " + forged, wantCode: http.StatusUnauthorized, wantError: "Invalid token", wantReason: "signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			var gotID int64
			called := false

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotID, _ = auth.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			h := RequireAuth(tokens, logging.NewJSONLogger(&logs, "debug"))(next)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(common.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, int64(42), gotID)
				return
			}

			assert.False(t, called)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			if tt.wantReason != "" {
				assert.Contains(t, logs.String(), `"reason":"`+tt.wantReason+`"`)
				assert.Contains(t, logs.String(), `"level":"WARN"`)
			}
		})
	}
}

func TestRequireAuth_ExpiredLogsReason(t *testing.T) {
	issuedAt := testNow.Add(-8 * 24 * time.Hour)
	old := newTestTokens(t, func() time.Time { return issuedAt })
	token, err := old.Issue(1)
	require.NoError(t, err)

	var logs bytes.Buffer
	h := RequireAuth(newTestTokens(t, func() time.Time { return testNow }), logging.NewJSONLogger(&logs, "info"))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("handler must not run") }),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, logs.String(), `"reason":"expired"`)
	assert.NotContains(t, rec.Body.String(), "expired")
}

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	h := RequestLogger(logging.NewJSONLogger(&logs, "info"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Contains(t, logs.String(), `"status":418`)
	assert.Contains(t, logs.String(), `"path":"/api/health"`)
}
