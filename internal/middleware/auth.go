package middleware

import (
	"context"
	"net/http"

	"github.com/courseapp/course-service/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// Authenticator verifies an email/password pair from a Basic auth header.
type Authenticator interface {
	Authenticate(email, password string) (*models.User, error)
}

func accessDenied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Access Denied"}`))
}

// Authenticate re-authenticates every request via HTTP Basic. No session or
// token is ever issued. Every failure path returns the same body so callers
// cannot enumerate users.
func Authenticate(auth Authenticator, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, pass, ok := r.BasicAuth()
			if !ok {
				log.Warn("Authorization header not found")
				accessDenied(w)
				return
			}

			user, err := auth.Authenticate(name, pass)
			if err != nil {
				// the service already logged the specific reason
				accessDenied(w)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user bound to the request context.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok
}
