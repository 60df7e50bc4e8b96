package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayush/members-site/internal/auth"
)

// WithSession resolves the session cookie to a username and injects it into
// the request context. Missing, tampered, or expired sessions leave the
// request anonymous; a session-store failure is a 500.
func WithSession(sessions *auth.SessionStore, signer *auth.CookieSigner, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sid, ok := signer.Verify(cookie.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			username, err := sessions.Get(r.Context(), sid)
			if err != nil {
				log.Err(err).Msg("session lookup failed")
				http.Error(w, "Internal server error. Check server logs.", http.StatusInternalServerError)
				return
			}
			if username == "" {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUsername(r.Context(), username)))
		})
	}
}

// RequireAuth redirects anonymous requests to the home page. It must run
// after WithSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UsernameFromContext(r.Context()) == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
