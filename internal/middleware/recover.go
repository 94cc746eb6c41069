package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Recover is the global fallback handler: anything that panics out of a
// route becomes a 500 with the error's message. Stack traces are logged only
// when global error logging is enabled.
func Recover(log *logrus.Logger, logErrors bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logErrors {
						log.Errorf("Global error handler: %v\n%s", rec, debug.Stack())
					}
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]interface{}{
						"message": fmt.Sprintf("%v", rec),
						"error":   struct{}{},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
