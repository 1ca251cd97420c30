package services

import (
	"context"
	"strings"

	"hvac-backend/internal/cache"
	"hvac-backend/internal/models"
	"hvac-backend/internal/timeutil"
)

var serviceRequestRefs = map[string]string{
	"service_requests_client_id_fkey":     "clientId",
	"service_requests_equipment_id_fkey":  "equipmentId",
	"service_requests_technician_id_fkey": "technicianId",
}

type ServiceRequestService struct {
	Repo ServiceRequestStore
}

func NewServiceRequestService(repo ServiceRequestStore) *ServiceRequestService {
	return &ServiceRequestService{Repo: repo}
}

// CreateServiceRequest opens a pending, unassigned request.
func (s *ServiceRequestService) CreateServiceRequest(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceRequest, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	var missing []string
	if req.ClientID <= 0 {
		missing = append(missing, "clientId")
	}
	if title == "" {
		missing = append(missing, "title")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, invalidValue("priority", priority)
	}

	scheduled, err := optionalDate("scheduledDate", req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	cost, err := req.EstimatedCost.Float()
	if err != nil {
		return nil, invalidNumber("estimatedCost", req.EstimatedCost.String())
	}

	sr := &models.ServiceRequest{
		ClientID:      req.ClientID,
		EquipmentID:   positiveID(req.EquipmentID),
		Title:         title,
		Description:   description,
		Status:        models.ServiceStatusPending,
		Priority:      priority,
		ScheduledDate: scheduled,
		EstimatedCost: cost,
	}
	if err := s.Repo.Create(ctx, sr); err != nil {
		return nil, referenceError(err, serviceRequestRefs)
	}
	cache.InvalidatePrefix(ctx, cache.ServicesPrefix)

	return s.GetServiceRequest(ctx, sr.ID)
}

// ListServiceRequests returns requests newest first.
func (s *ServiceRequestService) ListServiceRequests(ctx context.Context, filter models.ServiceRequestFilter) ([]*models.ServiceRequest, error) {
	if filter.Status != "" && !models.ValidServiceStatus(filter.Status) {
		return nil, invalidValue("status", filter.Status)
	}
	if filter.Priority != "" && !models.ValidPriority(filter.Priority) {
		return nil, invalidValue("priority", filter.Priority)
	}

	key := cache.ListKey(cache.ServicesPrefix, filter.Status, filter.Priority, filter.ClientID, filter.TechnicianID)
	var list []*models.ServiceRequest
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

func (s *ServiceRequestService) GetServiceRequest(ctx context.Context, id int) (*models.ServiceRequest, error) {
	sr, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return sr, nil
}

// UpdateServiceRequest applies a partial update. Status is taken as given;
// there is no transition table. Assigning a technician to a pending request
// without an explicit status moves it to assigned. Completing stamps
// completedDate once.
func (s *ServiceRequestService) UpdateServiceRequest(ctx context.Context, id int, req *models.UpdateServiceRequest) (*models.ServiceRequest, error) {
	sr, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	status := strings.TrimSpace(req.Status)
	if status != "" && !models.ValidServiceStatus(status) {
		return nil, invalidValue("status", status)
	}

	if req.TechnicianID != nil {
		sr.TechnicianID = positiveID(req.TechnicianID)
		if status == "" && sr.TechnicianID != nil && sr.Status == models.ServiceStatusPending {
			status = models.ServiceStatusAssigned
		}
	}
	if status != "" {
		sr.Status = status
	}

	if req.ActualCost.IsSet() {
		cost, err := req.ActualCost.Float()
		if err != nil {
			return nil, invalidNumber("actualCost", req.ActualCost.String())
		}
		sr.ActualCost = cost
	}
	if strings.TrimSpace(req.ScheduledDate) != "" {
		scheduled, err := optionalDate("scheduledDate", req.ScheduledDate)
		if err != nil {
			return nil, err
		}
		sr.ScheduledDate = scheduled
	}

	if sr.Status == models.ServiceStatusCompleted && sr.CompletedDate == nil {
		now := timeutil.Now()
		sr.CompletedDate = &now
	}

	if err := s.Repo.Update(ctx, sr); err != nil {
		return nil, referenceError(notFound(err), serviceRequestRefs)
	}
	cache.InvalidatePrefix(ctx, cache.ServicesPrefix)

	return s.GetServiceRequest(ctx, id)
}

func positiveID(id *int) *int {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}
