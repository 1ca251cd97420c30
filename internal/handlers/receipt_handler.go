package handlers

import (
	"net/http"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
	Export  *services.ExportService
}

func NewReceiptHandler(s *services.ReceiptService, export *services.ExportService) *ReceiptHandler {
	return &ReceiptHandler{Service: s, Export: export}
}

func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rc, err := h.Service.CreateReceipt(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao criar recibo")
		return
	}

	utils.Created(w, "Recibo criado com sucesso", "receipt", rc)
}

func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	financialID, ok := queryInt(w, r, "financialId")
	if !ok {
		return
	}

	list, err := h.Service.ListReceipts(r.Context(), models.ReceiptFilter{
		FinancialID: financialID,
		Status:      r.URL.Query().Get("status"),
	})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar recibos")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(list))
}

func (h *ReceiptHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rc, err := h.Service.GetReceipt(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar recibo")
		return
	}

	pdf, err := h.Export.ReceiptPDF(rc)
	if err != nil {
		writeError(w, r, err, "Erro ao gerar PDF")
		return
	}
	writePDF(w, services.ReceiptFilename(rc), pdf)
}

func (h *ReceiptHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rc, err := h.Service.GetReceipt(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar recibo")
		return
	}
	utils.JSON(w, http.StatusOK, h.Export.ReceiptShare(rc))
}
