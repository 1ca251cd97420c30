package handlers

import (
	"net/http"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

// CreateUser lets an admin create an account of any role.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Service.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao criar usuário")
		return
	}

	utils.Created(w, "Usuário criado com sucesso", "user", user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.Service.ListUsers(r.Context(), models.UserFilter{
		Role:   q.Get("role"),
		Search: q.Get("search"),
	})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar usuários")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(users))
}
