package handlers

import (
	"net/http"
	"strings"
	"time"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/internal/timeutil"
	"hvac-backend/pkg/utils"
)

type FinancialHandler struct {
	Service *services.FinancialService
}

func NewFinancialHandler(s *services.FinancialService) *FinancialHandler {
	return &FinancialHandler{Service: s}
}

func (h *FinancialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.Service.CreateTransaction(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao criar transação")
		return
	}

	utils.Created(w, "Transação criada com sucesso", "transaction", t)
}

func (h *FinancialHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryInt(w, r, "userId")
	if !ok {
		return
	}
	start, ok := queryDate(w, r, "startDate")
	if !ok {
		return
	}
	end, exclusive, ok := queryEndDate(w, r, "endDate")
	if !ok {
		return
	}

	q := r.URL.Query()
	list, err := h.Service.ListTransactions(r.Context(), models.TransactionFilter{
		Type:      q.Get("type"),
		Status:    q.Get("status"),
		UserID:    userID,
		StartDate:    start,
		EndDate:      end,
		EndExclusive: exclusive,
	})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar transações")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(list))
}

func (h *FinancialHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.UpdateTransactionStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.Service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, "Erro ao atualizar transação")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Status atualizado com sucesso",
		"transaction": t,
	})
}

// queryDate parses an optional date query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	t, err := timeutil.ParseDate(raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Data inválida para "+name)
		return nil, false
	}
	return &t, true
}

// queryEndDate parses an optional range end; a plain date includes that whole day.
func queryEndDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, false, true
	}
	t, exclusive, err := timeutil.ParseEndDate(raw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Data inválida para "+name)
		return nil, false, false
	}
	return &t, exclusive, true
}
