package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/qemer/lms/apps/api/echo"
	"github.com/qemer/lms/core/auth"
)

func Test_authApi_login(t *testing.T) {
	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "wrong password", body: marchallObj(t, echoapi.LoginRequest{Email: "student@qemer.com", Password: "letmein"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown email", body: marchallObj(t, echoapi.LoginRequest{Email: "ghost@qemer.com", Password: "student123"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("logged in", func(t *testing.T) {
		body := marchallObj(t, echoapi.LoginRequest{Email: "student@qemer.com", Password: "student123"})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp echoapi.LoginResponse
		unmarchallObj(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, studentIdentity, resp.User)

		// the session persisted the identity
		assert.Equal(t, auth.Authenticated, session.State())
		persisted, ok, err := sessionStore.Read()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, studentIdentity, persisted)
	})
}

func Test_authApi_me(t *testing.T) {
	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Invalid token", token: "lol", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/auth/me"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("me", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/auth/me", getToken(t, studentIdentity))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var identity auth.Identity
		unmarchallObj(t, rec, &identity)
		assert.Equal(t, studentIdentity, identity)
	})
}

func Test_authApi_logout(t *testing.T) {
	t.Run("Auth required", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodPost, path: "/v1/auth/logout",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		}
		req, rec := newRequest(tt.method, tt.path)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("logged out", func(t *testing.T) {
		// log in first so there is something to clear
		body := marchallObj(t, echoapi.LoginRequest{Email: "student@qemer.com", Password: "student123"})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		req, rec = newAuthRequest(http.MethodPost, "/v1/auth/logout", getToken(t, studentIdentity))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, auth.Unauthenticated, session.State())
		_, ok, err := sessionStore.Read()
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
