package handlers

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashCookieName = "blog_flash"
	flashTTL        = 5 * time.Minute
)

type flashClaims struct {
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// flashKey derives the flash signing key from the session secret so a flash
// cookie never verifies as a session cookie.
func flashKey(secret string) []byte {
	sum := sha256.Sum256([]byte("flash:" + secret))
	return sum[:]
}

// setFlash stores a one-shot message shown on the next rendered page.
func (h *Handlers) setFlash(w http.ResponseWriter, message string) {
	now := time.Now()
	claims := flashClaims{
		Message: message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.flashKey)
	if err != nil {
		h.Log.Error("failed to sign flash message", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending message, if any, and clears it. Unsigned or
// expired messages are dropped.
func (h *Handlers) popFlash(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var claims flashClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return h.flashKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		h.Log.Debug("dropping invalid flash cookie", "error", err)
		return nil
	}
	if claims.Message == "" {
		return nil
	}

	return []string{claims.Message}
}
