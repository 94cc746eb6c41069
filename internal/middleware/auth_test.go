package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseapp/course-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	user *models.User
}

func (f *fakeAuth) Authenticate(email, password string) (*models.User, error) {
	if f.user != nil && f.user.EmailAddress == email && password == "rightpassword" {
		return f.user, nil
	}
	return nil, errors.New("invalid credentials")
}

func newAuthChain(user *models.User) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := CurrentUser(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(current.EmailAddress))
	})
	return Authenticate(&fakeAuth{user: user}, log)(next)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	chain := newAuthChain(&models.User{EmailAddress: "joe@smith.com"})

	req := httptest.NewRequest("GET", "/api/users", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rec.Body.String())
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	chain := newAuthChain(&models.User{EmailAddress: "joe@smith.com"})

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Basic not-base64!!!")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rec.Body.String())
}

func TestAuthenticateBadCredentials(t *testing.T) {
	chain := newAuthChain(&models.User{EmailAddress: "joe@smith.com"})

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.SetBasicAuth("joe@smith.com", "wrongpassword")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Access Denied"}`, rec.Body.String())
}

func TestAuthenticateSuccessBindsUser(t *testing.T) {
	chain := newAuthChain(&models.User{ID: 1, EmailAddress: "joe@smith.com"})

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.SetBasicAuth("joe@smith.com", "rightpassword")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "joe@smith.com", rec.Body.String())
}

func TestCurrentUserAbsent(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, ok := CurrentUser(req.Context())
	assert.False(t, ok)
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("unrouted failure"))
	})
	chain := Recover(log, false)(boom)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"unrouted failure","error":{}}`, rec.Body.String())
}
