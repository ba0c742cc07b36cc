package middleware

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"

	"blogsite/internal/logger"
)

const csrfCookieName = "blog_csrf"

// CSRF rejects state-changing requests that do not echo the form token.
// When secure is false the site is served over plain HTTP and requests are
// marked as such, so the HTTPS-only referer check is skipped.
func CSRF(secret string, secure bool, log *logger.Logger) Middleware {
	key := sha256.Sum256([]byte("csrf:" + secret))

	protect := csrf.Protect(key[:],
		csrf.CookieName(csrfCookieName),
		csrf.Path("/"),
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("csrf check failed", "method", r.Method, "path", r.URL.Path, "reason", csrf.FailureReason(r))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if secure {
			return protected
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
