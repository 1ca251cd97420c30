package handlers

import (
	"net/http"
	"strconv"

	"hvac-backend/internal/models"
	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"

	"go.uber.org/zap"
)

type PMOCHandler struct {
	Service *services.PMOCService
	Export  *services.ExportService
}

func NewPMOCHandler(s *services.PMOCService, export *services.ExportService) *PMOCHandler {
	return &PMOCHandler{Service: s, Export: export}
}

func (h *PMOCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePMOCRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.Service.CreateReport(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "Erro ao criar relatório PMOC")
		return
	}

	utils.Created(w, "Relatório PMOC criado com sucesso", "report", report)
}

func (h *PMOCHandler) List(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := queryInt(w, r, "equipmentId")
	if !ok {
		return
	}
	technicianID, ok := queryInt(w, r, "technicianId")
	if !ok {
		return
	}

	list, err := h.Service.ListReports(r.Context(), models.PMOCFilter{
		EquipmentID:      equipmentID,
		TechnicianID:     technicianID,
		ComplianceStatus: r.URL.Query().Get("status"),
	})
	if err != nil {
		writeError(w, r, err, "Erro ao buscar relatórios PMOC")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(list))
}

func (h *PMOCHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	report, err := h.Service.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar relatório PMOC")
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

func (h *PMOCHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	images, err := h.Service.ListImages(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar imagens")
		return
	}
	utils.JSON(w, http.StatusOK, orEmpty(images))
}

// ReplaceImages sets the complete image list of a report.
func (h *PMOCHandler) ReplaceImages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ReplaceImagesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	images, err := h.Service.ReplaceImages(r.Context(), id, req.Images)
	if err != nil {
		writeError(w, r, err, "Erro ao salvar imagens")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Imagens atualizadas com sucesso",
		"images":  orEmpty(images),
	})
}

func (h *PMOCHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	report, err := h.Service.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar relatório PMOC")
		return
	}

	pdf, err := h.Export.ReportPDF(report)
	if err != nil {
		writeError(w, r, err, "Erro ao gerar PDF")
		return
	}

	zap.S().Infow("[PMOC] PDF generated", "report_id", report.ID, "report_number", report.ReportNumber)
	writePDF(w, services.ReportFilename(report), pdf)
}

func (h *PMOCHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	report, err := h.Service.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Erro ao buscar relatório PMOC")
		return
	}
	utils.JSON(w, http.StatusOK, h.Export.ReportShare(report))
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
