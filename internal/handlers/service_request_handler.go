package handlers

import (
	"net/http"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

type ServiceRequestHandler struct {
	Service *services.ServiceRequestService
}

func NewServiceRequestHandler(s *services.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{Service: s}
}

func (h *ServiceRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sr, err := h.Service.CreateServiceRequest(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao criar solicitação de serviço")
		return
	}

	utils.Created(w, "Solicitação de serviço criada com sucesso", "service", sr)
}

func (h *ServiceRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, ok := queryInt(w, r, "clientId")
	if !ok {
		return
	}
	technicianID, ok := queryInt(w, r, "technicianId")
	if !ok {
		return
	}

	q := r.URL.Query()
	list, err := h.Service.ListServiceRequests(r.Context(), models.ServiceRequestFilter{
		Status:       q.Get("status"),
		Priority:     q.Get("priority"),
		ClientID:     clientID,
		TechnicianID: technicianID,
	})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar serviços")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(list))
}

func (h *ServiceRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sr, err := h.Service.GetServiceRequest(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar serviço")
		return
	}
	utils.JSON(w, http.StatusOK, sr)
}

func (h *ServiceRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.UpdateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sr, err := h.Service.UpdateServiceRequest(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, "Erro ao atualizar serviço")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Serviço atualizado com sucesso",
		"service": sr,
	})
}
