package handlers

import (
	"net/http"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

type EquipmentHandler struct {
	Service *services.EquipmentService
}

func NewEquipmentHandler(s *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{Service: s}
}

func (h *EquipmentHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.ListClients(r.Context())
	if err != nil {
		writeError(w, r, err, "Erro ao buscar clientes")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(clients))
}

func (h *EquipmentHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEquipmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	equipment, err := h.Service.CreateEquipment(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao cadastrar equipamento")
		return
	}

	utils.Created(w, "Equipamento cadastrado com sucesso", "equipment", equipment)
}

func (h *EquipmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryInt(w, r, "clientId")
	if !ok {
		return
	}

	list, err := h.Service.ListEquipment(r.Context(), models.EquipmentFilter{ClientID: clientID})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar equipamentos")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(list))
}
