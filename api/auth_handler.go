package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medigital/site-backend/errs"
)

// sessionTTL bounds how long an issued admin token stays valid.
const sessionTTL = 24 * time.Hour

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	secret    []byte
}

func newAuthHandler(password string, secret []byte) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		password:  password,
		secret:    secret,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login exchanges the shared admin password for a signed session token.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if h.password == "" {
			h.logger.Warn().Msg("login attempted but no admin password is configured")
			h.responder.WriteError(w, errs.NewUnauthorizedError("admin login is not configured"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid password"))
			return
		}

		now := time.Now()
		claims := jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		}

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign session token")
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"token":     token,
			"expiresAt": claims.ExpiresAt.Time,
		})
	}
}
