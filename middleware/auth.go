package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/dcode-github/property_chatbot/backend/controllers"
)

// Authenticator identifies the principal behind a request, returning an
// error when the request carries no valid credentials.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// RequireAuth redirects unauthenticated requests to loginPath before they
// reach next. Authenticated requests carry the principal in their context.
func RequireAuth(auth Authenticator, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.Authenticate(r)
			if err != nil {
				log.Printf("Unauthenticated request %s %s: %v", r.Method, r.URL, err)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), controllers.AdminKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
