package authn

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/rollcall-app/rollcall/internal/authz"
	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

// Middleware authenticates bearer tokens and places the resulting
// identity in the request context. It establishes who is calling; the
// authz middleware decides what they may do.
type Middleware struct {
	Issuer *TokenIssuer
	Logger *slog.Logger
}

// Authenticate rejects requests without a valid bearer token.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		identity, err := m.Issuer.Verify(raw)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Info("token rejected", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		ctx := authz.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
