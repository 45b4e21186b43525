package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/straye-as/concrete-calc/internal/auth"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func decodeAPIError(t *testing.T, body io.Reader) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(body).Decode(&apiErr))
	return apiErr
}

func TestLogging_AssignsRequestID(t *testing.T) {
	var seen string
	h := middleware.Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
		assert.NotNil(t, middleware.LoggerFromContext(r.Context(), nil))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
}

func TestLogging_RequestIDFromHeader(t *testing.T) {
	h := middleware.Logging(zap.NewNop())(okHandler())

	t.Run("valid id is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-12345678")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "req-12345678", rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("malformed id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		got := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEqual(t, "<script>", got)
		assert.Len(t, got, 36)
	})
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	fallback := zap.NewNop()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, fallback, middleware.LoggerFromContext(req.Context(), fallback))
	assert.Empty(t, middleware.RequestIDFromContext(req.Context()))
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeAPIError(t, rec.Body)
	assert.Equal(t, domain.ErrorTypeInternal, apiErr.Type)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := middleware.MaxBodySize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.NoError(t, readErr)
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'none'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
	}

	rec := httptest.NewRecorder()
	middleware.SecurityHeaders(cfg)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := rec.Header()
	assert.Equal(t, "max-age=31536000; includeSubDomains", h.Get("Strict-Transport-Security"))
	assert.Equal(t, "default-src 'none'", h.Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
	assert.Empty(t, h.Get("X-XSS-Protection"))
}

func TestContentSecurityPolicy_Overrides(t *testing.T) {
	cfg := &config.SecurityConfig{ContentSecurityPolicy: "default-src 'none'"}
	h := middleware.SecurityHeaders(cfg)(middleware.ContentSecurityPolicy("style-src 'unsafe-inline'")(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "style-src 'unsafe-inline'", rec.Header().Get("Content-Security-Policy"))
}

func preflight(h http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/calculators", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	base := config.CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}

	tests := []struct {
		name        string
		origins     []string
		environment string
		origin      string
		allowed     bool
	}{
		{"wildcard allows any origin", []string{"*"}, "production", "https://blog.example.org", true},
		{"explicit origin allowed", []string{"https://calc.example.com"}, "production", "https://calc.example.com", true},
		{"explicit origin rejects others", []string{"https://calc.example.com"}, "production", "https://evil.example", false},
		{"development allows all", nil, "development", "http://localhost:3000", true},
		{"production without origins denies", nil, "production", "https://calc.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.AllowedOrigins = tt.origins
			h := middleware.CORS(&cfg, tt.environment, zap.NewNop())(okHandler())

			rec := preflight(h, tt.origin)
			if tt.allowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func newRateLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(&cfg, zap.NewNop())
}

func hit(h http.Handler, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_LimitByIP(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2})
	h := rl.LimitByIP(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "/api/v1/units", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(h, "/api/v1/units", "10.0.0.1:1234").Code)

	rec := hit(h, "/api/v1/units", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, domain.ErrorTypeRateLimited, decodeAPIError(t, rec.Body).Type)

	// another client is counted separately
	assert.Equal(t, http.StatusOK, hit(h, "/api/v1/units", "10.0.0.2:1234").Code)
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1})
	h := rl.LimitByIP(okHandler())

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:443"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.5, 192.0.2.10"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.5"))
	assert.Equal(t, http.StatusOK, send("203.0.113.6"))
}

func TestRateLimiter_Whitelists(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"10.0.0.9"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	})
	h := rl.LimitByIP(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/health", "10.0.0.1:1").Code)
		assert.Equal(t, http.StatusOK, hit(h, "/swagger/index.html", "10.0.0.1:1").Code)
		assert.Equal(t, http.StatusOK, hit(h, "/api/v1/units", "10.0.0.9:1").Code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1})
	h := rl.LimitCalculations(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/", "10.0.0.1:1").Code)
	}
}

func TestRateLimiter_LimitAdminKeysByPrincipal(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinuteAuth: 1})
	limited := rl.LimitAdmin(okHandler())

	as := func(subject string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/estimates", nil)
		req.RemoteAddr = "10.0.0.1:1"
		p := &auth.Principal{Subject: subject, Method: auth.MethodJWT}
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, as("alice"))
	assert.Equal(t, http.StatusTooManyRequests, as("alice"))
	// same IP, different principal
	assert.Equal(t, http.StatusOK, as("ops"))
}
