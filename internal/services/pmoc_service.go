package services

import (
	"context"
	"errors"
	"strings"

	"hvac-backend/internal/cache"
	"hvac-backend/internal/metrics"
	"hvac-backend/internal/models"
	"hvac-backend/internal/repositories"

	"go.uber.org/zap"
)

const reportNumberConstraint = "pmoc_reports_report_number_key"

var pmocRefs = map[string]string{
	"pmoc_reports_equipment_id_fkey":  "equipmentId",
	"pmoc_reports_technician_id_fkey": "technicianId",
	"pmoc_reports_service_id_fkey":    "serviceId",
}

type PMOCService struct {
	Repo PMOCStore
}

func NewPMOCService(repo PMOCStore) *PMOCService {
	return &PMOCService{Repo: repo}
}

// CreateReport validates an inspection and stores it under the next
// PMOC-NNNNNN number.
func (s *PMOCService) CreateReport(ctx context.Context, req *models.CreatePMOCRequest) (*models.PMOCReport, error) {
	findings := strings.TrimSpace(req.Findings)
	recommendations := strings.TrimSpace(req.Recommendations)

	var missing []string
	if req.EquipmentID <= 0 {
		missing = append(missing, "equipmentId")
	}
	if req.TechnicianID <= 0 {
		missing = append(missing, "technicianId")
	}
	if strings.TrimSpace(req.InspectionDate) == "" {
		missing = append(missing, "inspectionDate")
	}
	if strings.TrimSpace(req.NextInspection) == "" {
		missing = append(missing, "nextInspection")
	}
	if findings == "" {
		missing = append(missing, "findings")
	}
	if recommendations == "" {
		missing = append(missing, "recommendations")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	status := strings.TrimSpace(req.ComplianceStatus)
	if status == "" {
		status = models.CompliancePending
	}
	if !models.ValidComplianceStatus(status) {
		return nil, invalidValue("complianceStatus", status)
	}

	inspection, err := requiredDate("inspectionDate", req.InspectionDate)
	if err != nil {
		return nil, err
	}
	next, err := requiredDate("nextInspection", req.NextInspection)
	if err != nil {
		return nil, err
	}
	if next.Before(inspection) {
		return nil, invalidValue("nextInspection", req.NextInspection)
	}

	report := &models.PMOCReport{
		EquipmentID:        req.EquipmentID,
		TechnicianID:       req.TechnicianID,
		ServiceID:          positiveID(req.ServiceID),
		InspectionDate:     inspection,
		NextInspection:     next,
		Findings:           findings,
		Recommendations:    recommendations,
		ComplianceStatus:   status,
		ElectricalReadings: optionalString(req.ElectricalReadings),
	}

	measurements := []struct {
		field string
		in    models.OptionalNumber
		out   **float64
	}{
		{"temperature", req.Temperature, &report.Temperature},
		{"pressure", req.Pressure, &report.Pressure},
		{"gasLevel", req.GasLevel, &report.GasLevel},
	}
	for _, m := range measurements {
		v, err := m.in.Float()
		if err != nil {
			return nil, invalidNumber(m.field, m.in.String())
		}
		*m.out = v
	}

	images, err := validateImages(req.Images)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, report, images); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) && repositories.ViolatedConstraint(err) == reportNumberConstraint {
			zap.S().Errorw("[PMOC] Report number collision", "report_number", report.ReportNumber, "error", err)
			return nil, ErrDuplicateNumber
		}
		return nil, referenceError(err, pmocRefs)
	}

	metrics.DocumentsIssued.WithLabelValues("pmoc").Inc()
	cache.InvalidatePrefix(ctx, cache.PMOCPrefix)
	zap.S().Infow("[PMOC] Report created", "report_id", report.ID, "report_number", report.ReportNumber)

	return s.GetReport(ctx, report.ID)
}

func (s *PMOCService) GetReport(ctx context.Context, id int) (*models.PMOCReport, error) {
	report, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return report, nil
}

// ListReports returns reports newest first.
func (s *PMOCService) ListReports(ctx context.Context, filter models.PMOCFilter) ([]*models.PMOCReport, error) {
	if filter.ComplianceStatus != "" && !models.ValidComplianceStatus(filter.ComplianceStatus) {
		return nil, invalidValue("status", filter.ComplianceStatus)
	}

	key := cache.ListKey(cache.PMOCPrefix, filter.EquipmentID, filter.TechnicianID, filter.ComplianceStatus)
	var list []*models.PMOCReport
	if cache.GetJSON(ctx, key, &list) {
		return list, nil
	}

	list, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, list, cache.ListTTL)
	return list, nil
}

// ReplaceImages swaps the whole image set of a report. Callers send the
// complete desired list; an empty list removes every image.
func (s *PMOCService) ReplaceImages(ctx context.Context, reportID int, inputs []models.ReportImageInput) ([]models.ReportImage, error) {
	images, err := validateImages(inputs)
	if err != nil {
		return nil, err
	}

	replaced, err := s.Repo.ReplaceImages(ctx, reportID, images)
	if err != nil {
		return nil, invalidData(notFound(err))
	}
	cache.InvalidatePrefix(ctx, cache.PMOCPrefix)
	return replaced, nil
}

// ListImages returns a report's images ordered by upload date.
func (s *PMOCService) ListImages(ctx context.Context, reportID int) ([]models.ReportImage, error) {
	images, err := s.Repo.ListImages(ctx, reportID)
	if err != nil {
		return nil, notFound(err)
	}
	return images, nil
}

func validateImages(inputs []models.ReportImageInput) ([]models.ReportImageInput, error) {
	out := make([]models.ReportImageInput, 0, len(inputs))
	for _, in := range inputs {
		in.URL = strings.TrimSpace(in.URL)
		in.Filename = strings.TrimSpace(in.Filename)
		if in.URL == "" {
			return nil, missingFields("images.url")
		}
		if in.Filename == "" {
			in.Filename = filenameFromPath(in.Path, in.URL)
		}
		if in.Size < 0 {
			return nil, invalidNumber("images.size", "negative")
		}
		out = append(out, in)
	}
	return out, nil
}

// filenameFromPath falls back to the last segment of the storage path or URL.
func filenameFromPath(path, url string) string {
	for _, candidate := range []string{path, url} {
		candidate = strings.TrimRight(candidate, "/")
		if i := strings.LastIndex(candidate, "/"); i >= 0 && i < len(candidate)-1 {
			return candidate[i+1:]
		}
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
