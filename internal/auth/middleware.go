package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/straye-as/concrete-calc/internal/domain"
	"go.uber.org/zap"
)

// APIKeyHeader carries the static admin key
const APIKeyHeader = "X-API-Key"

// Middleware authenticates admin requests
type Middleware struct {
	tokens *TokenIssuer
	apiKey string
	logger *zap.Logger
}

// NewMiddleware creates the admin authentication middleware. tokens may be
// nil, in which case only the API key is accepted.
func NewMiddleware(apiKey string, tokens *TokenIssuer, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		apiKey: apiKey,
		logger: logger,
	}
}

// Authenticate accepts either the admin API key or a bearer token
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if key := r.Header.Get(APIKeyHeader); key != "" {
			if !m.validateAPIKey(key) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				unauthorized(w, "Invalid API key")
				return
			}
			p := &Principal{Subject: "api-key", Method: MethodAPIKey}
			m.logAuthenticated(r, p, start)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "Missing credentials")
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			unauthorized(w, "Invalid authorization header format")
			return
		}
		if m.tokens == nil {
			unauthorized(w, "Bearer tokens are not enabled")
			return
		}

		p, err := m.tokens.Validate(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			unauthorized(w, err.Error())
			return
		}

		m.logAuthenticated(r, p, start)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAPIKey only accepts the API key. Token issuance sits behind it so
// tokens cannot be used to mint new tokens.
func (m *Middleware) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.validateAPIKey(r.Header.Get(APIKeyHeader)) {
			m.logger.Warn("API key required",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			unauthorized(w, "A valid API key is required")
			return
		}
		p := &Principal{Subject: "api-key", Method: MethodAPIKey}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (m *Middleware) logAuthenticated(r *http.Request, p *Principal, start time.Time) {
	m.logger.Info("request authenticated",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("auth_type", string(p.Method)),
		zap.String("subject", p.Subject),
		zap.Duration("auth_duration", time.Since(start)),
	)
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
}
