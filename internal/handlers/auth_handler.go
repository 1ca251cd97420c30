package handlers

import (
	"net/http"
	"time"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

type AuthHandler struct {
	Service    *services.UserService
	CookieName string
	Secure     bool
}

// NewAuthHandler creates the auth handler. secure marks the session cookie
// HTTPS-only and should be on whenever the API is served over TLS.
func NewAuthHandler(s *services.UserService, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		Service:    s,
		CookieName: cookieName,
		Secure:     secure,
	}
}

// Register handles public self-registration (client or technician).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao cadastrar usuário")
		return
	}

	utils.Created(w, "Usuário cadastrado com sucesso", "user", user)
}

// Login authenticates and sets the session cookie alongside the token in the body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao realizar login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    authResp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Service.JWTManager.Expiration() / time.Second),
	})

	utils.JSON(w, http.StatusOK, authResp)
}

// Logout clears the session cookie. Bearer tokens simply expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}
