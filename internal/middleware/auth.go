// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/domain"
)

type contextKey string

const identityKey contextKey = "accountd_identity"

// basePathPrefixes is the route allow-list for base tokens. Product tokens
// are gated on their claims instead and reset tokens are rejected everywhere.
var basePathPrefixes = []string{
	"/api/accounts",
	"/api/auth",
	"/api/organizations",
	"/api/platform",
	"/api/users",
	"/api/products",
}

// IdentityFromContext returns the verified claims the guard attached.
func IdentityFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*auth.Claims)
	return claims, ok
}

// WithIdentity attaches claims to a context. Exposed for handler tests.
func WithIdentity(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// RequireAuth gates every request on credential presence, validity and
// type-to-route compatibility. Rejections are logged at warn with requester
// ip and path; the bearer value itself is never logged.
func RequireAuth(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, status, code, msg := authenticate(tm, r)
			if claims == nil {
				respondWithCode(w, status, code, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuth runs the same checks as RequireAuth but proceeds
// unauthenticated on any failure. Used by routes that behave differently for
// anonymous callers but never require a credential.
func OptionalAuth(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _, _, _ := authenticate(tm, r)
			if claims != nil {
				r = r.WithContext(WithIdentity(r.Context(), claims))
			} else {
				slog.Debug("optional auth failed, continuing without authentication",
					"ip", remoteIP(r), "path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authenticate performs the shared guard checks. On failure it returns a nil
// claims pointer plus the HTTP status, machine code and message to respond
// with.
func authenticate(tm *auth.TokenManager, r *http.Request) (*auth.Claims, int, string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		slog.Warn("authorization header missing", "ip", remoteIP(r), "path", r.URL.Path)
		return nil, http.StatusUnauthorized, "UNAUTHORIZED", "authorization required"
	}

	// Accept both "Bearer <token>" and a bare token by auto-prefixing.
	if !strings.HasPrefix(header, "Bearer ") {
		header = "Bearer " + header
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	if token == "" {
		slog.Warn("bearer token missing", "ip", remoteIP(r), "path", r.URL.Path)
		return nil, http.StatusUnauthorized, "UNAUTHORIZED", "authorization required"
	}

	claims, err := tm.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			slog.Warn("token expired", "ip", remoteIP(r), "path", r.URL.Path)
			return nil, http.StatusUnauthorized, "TOKEN_EXPIRED", "token expired"
		case errors.Is(err, domain.ErrTokenInvalid):
			slog.Warn("invalid token", "ip", remoteIP(r), "path", r.URL.Path)
			return nil, http.StatusUnauthorized, "TOKEN_INVALID", "invalid token"
		default:
			slog.Error("auth guard error", "error", err, "ip", remoteIP(r), "path", r.URL.Path)
			return nil, http.StatusInternalServerError, "INTERNAL", "authentication failed"
		}
	}

	path := r.URL.Path

	switch claims.Type() {
	case auth.TokenBase:
		if !pathAllowed(path) {
			slog.Warn("base token used for non-allowed route",
				"user_id", claims.UserID(), "path", path)
			return nil, http.StatusUnauthorized, "UNAUTHORIZED", "token type not valid for this route"
		}
	case auth.TokenProduct:
		if claims.Product == "" || claims.ResourceID == "" {
			slog.Warn("product token missing required claims",
				"user_id", claims.UserID(), "path", path,
				"has_product", claims.Product != "", "has_resource_id", claims.ResourceID != "")
			return nil, http.StatusUnauthorized, "UNAUTHORIZED", "invalid product token"
		}
	default:
		// Reset tokens only unlock the password-reset flow, which runs
		// outside the guard.
		slog.Warn("credential type not accepted by guard",
			"user_id", claims.UserID(), "token_type", claims.Type(), "path", path)
		return nil, http.StatusUnauthorized, "UNAUTHORIZED", "token type not valid for this route"
	}

	slog.Debug("request authenticated",
		"user_id", claims.UserID(), "token_type", claims.Type(), "path", path)

	return claims, 0, "", ""
}

func pathAllowed(path string) bool {
	for _, prefix := range basePathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from X-Forwarded-For.
	if host := r.RemoteAddr; host != "" {
		if i := strings.LastIndex(host, ":"); i > 0 {
			return host[:i]
		}
		return host
	}
	return "unknown"
}

// errorEnvelope mirrors the handler package's ErrorResponse so guard and
// handler rejections share one wire shape. Importing handler here would cycle.
type errorEnvelope struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"error_code,omitempty"`
}

func respondWithCode(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{
		Error: message,
		Code:  code,
	})
}
