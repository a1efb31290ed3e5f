package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/utils"
)

const SessionCookie = "admin_session"

// SessionAuth keeps the admin session in a signed JWT cookie.
type SessionAuth struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

func NewSessionAuth(secret string, ttl time.Duration, secure bool) *SessionAuth {
	return &SessionAuth{key: []byte(secret), ttl: ttl, secure: secure}
}

func (s *SessionAuth) Authenticate(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", fmt.Errorf("%w: no session", models.ErrUnauthorized)
	}
	claims, err := utils.ValidateJWT(s.key, cookie.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return claims.Username, nil
}

// Start issues a session cookie for username.
func (s *SessionAuth) Start(w http.ResponseWriter, username string) error {
	token, err := utils.GenerateJWT(s.key, username, s.ttl)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// End clears the session cookie.
func (s *SessionAuth) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
