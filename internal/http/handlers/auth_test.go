package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/models"
)

func newAuthHandler(users *fakeUserStore) *AuthHandler {
	return NewAuthHandler(users, newTestTokens(), false, time.Hour)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestSignupForcesUserRole(t *testing.T) {
	users := newFakeUserStore()
	h := newAuthHandler(users)

	// An injected role field must not influence the stored role.
	rec := postJSON(t, h.Signup, "/auth/signup", map[string]string{
		"username": "ana",
		"email":    "a@x.com",
		"password": "secret1",
		"phone":    "841234567",
		"role":     "admin",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	stored, err := users.FindByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.Equal(t, "ana", stored.Username)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	h := newAuthHandler(newFakeUserStore())

	rec := postJSON(t, h.Signup, "/auth/signup", map[string]string{
		"username": "ana",
		"email":    "a@x.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	h := newAuthHandler(users)

	body := map[string]string{
		"username": "ana",
		"email":    "a@x.com",
		"password": "secret1",
		"phone":    "841234567",
	}
	require.Equal(t, http.StatusCreated, postJSON(t, h.Signup, "/auth/signup", body).Code)

	rec := postJSON(t, h.Signup, "/auth/signup", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "already registered")
}

func TestSigninSetsCookieAndReturnsToken(t *testing.T) {
	users := newFakeUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = users.CreateUser(t.Context(), models.User{
		Username: "ana", Email: "a@x.com", Role: models.RoleUser, PasswordHash: string(hash),
	})
	require.NoError(t, err)

	h := newAuthHandler(users)
	rec := postJSON(t, h.Signin, "/auth/signin", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "access_token cookie must be set")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)

	identity, err := newTestTokens().Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, identity.Role)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `"token"`), "token must be echoed in the body")
	assert.False(t, strings.Contains(body, string(hash)), "password hash must never leave the server")
}

func TestSigninWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = users.CreateUser(t.Context(), models.User{
		Username: "ana", Email: "a@x.com", Role: models.RoleUser, PasswordHash: string(hash),
	})
	require.NoError(t, err)

	h := newAuthHandler(users)
	rec := postJSON(t, h.Signin, "/auth/signin", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSigninUnknownEmail(t *testing.T) {
	h := newAuthHandler(newFakeUserStore())

	rec := postJSON(t, h.Signin, "/auth/signin", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoogleBootstrapsNewAccount(t *testing.T) {
	users := newFakeUserStore()
	h := newAuthHandler(users)

	rec := postJSON(t, h.Google, "/auth/google", map[string]string{
		"username": "ana",
		"email":    "a@x.com",
		"avatar":   "https://img.example/ana.png",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := users.FindByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.NotEmpty(t, stored.PasswordHash)

	// A second visit signs in the same account instead of duplicating it.
	rec = postJSON(t, h.Google, "/auth/google", map[string]string{
		"username": "ana",
		"email":    "a@x.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, users.users, 1)
}

func TestCreateUserAcceptsAnyValidRole(t *testing.T) {
	users := newFakeUserStore()
	h := newAuthHandler(users)

	rec := postJSON(t, h.CreateUser, "/auth/create-user", map[string]string{
		"username": "carlos",
		"email":    "c@x.com",
		"password": "secret1",
		"phone":    "841111111",
		"role":     "admin",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	stored, err := users.FindByEmail(t.Context(), "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	h := newAuthHandler(newFakeUserStore())

	rec := postJSON(t, h.CreateUser, "/auth/create-user", map[string]string{
		"username": "carlos",
		"email":    "c@x.com",
		"password": "secret1",
		"phone":    "841111111",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
