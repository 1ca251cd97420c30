package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hvac-backend/internal/middleware"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrInvalidValue),
		errors.Is(err, services.ErrInvalidNumber),
		errors.Is(err, services.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateNumber):
		return http.StatusConflict
	case errors.Is(err, services.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrImageProcessing):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

var fixedMessages = map[error]string{
	services.ErrDuplicateEmail:     "Email já cadastrado",
	services.ErrInvalidCredentials: "Email ou senha inválidos",
	services.ErrDuplicateNumber:    "Número de documento já utilizado. Tente novamente.",
}

// writeError answers with {"error": message}. Validation errors carry their
// own message; store failures are logged and answered with fallback.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		fields := []interface{}{"method", r.Method, "path", r.URL.Path, "error", err}
		if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
			fields = append(fields, "user_id", id)
		}
		if role, ok := middleware.GetRoleFromContext(r.Context()); ok {
			fields = append(fields, "role", role)
		}
		zap.S().Errorw("[API] "+fallback, fields...)
		utils.Error(w, status, fallback)
		return
	}

	var fe *services.FieldError
	switch {
	case errors.As(err, &fe):
		utils.Error(w, status, fe.Message)
	case status == http.StatusNotFound:
		utils.Error(w, status, "Registro não encontrado")
	default:
		for sentinel, msg := range fixedMessages {
			if errors.Is(err, sentinel) {
				utils.Error(w, status, msg)
				return
			}
		}
		utils.Error(w, status, err.Error())
	}
}

// decodeJSON reads the request body into v, answering 400 on malformed JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return false
	}
	return true
}

// pathID parses the {id} route variable, answering 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter. Absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		utils.Error(w, http.StatusBadRequest, "Valor numérico inválido para "+name)
		return 0, false
	}
	return n, true
}

// orEmpty makes list endpoints answer [] instead of null.
func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
