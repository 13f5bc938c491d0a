package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	h := newAuthHandler("hunter2", []byte("signing-secret"))

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"correct password", `{"password":"hunter2"}`, http.StatusOK},
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized},
		{"empty password", `{"password":""}`, http.StatusUnauthorized},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.login()(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	h := newAuthHandler("", []byte("secret"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":""}`))
	rec := httptest.NewRecorder()
	h.login()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	secret := []byte("signing-secret")
	h := newAuthHandler("hunter2", secret)
	mw := newAuthMiddleware(secret)

	router := chi.NewRouter()
	router.With(mw.authenticate).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin", ctxGetAdminSubject(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	// Obtain a token via login
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.login()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// Token admits the request
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticateRejections(t *testing.T) {
	mw := newAuthMiddleware([]byte("signing-secret"))
	router := chi.NewRouter()
	router.With(mw.authenticate).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not a bearer token", "Basic abc123"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticateRejectsTokenFromOtherSecret(t *testing.T) {
	issuer := newAuthHandler("hunter2", []byte("secret-a"))
	mw := newAuthMiddleware([]byte("secret-b"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"hunter2"}`))
	rec := httptest.NewRecorder()
	issuer.login()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	router := chi.NewRouter()
	router.With(mw.authenticate).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	protected := httptest.NewRequest(http.MethodGet, "/protected", nil)
	protected.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, protected)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
