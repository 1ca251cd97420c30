package services

import (
	"context"
	"strings"
	"time"

	"hvac-backend/internal/cache"
	"hvac-backend/internal/models"
	"hvac-backend/internal/timeutil"
)

type EquipmentService struct {
	Repo EquipmentStore
}

func NewEquipmentService(repo EquipmentStore) *EquipmentService {
	return &EquipmentService{Repo: repo}
}

func (s *EquipmentService) ListClients(ctx context.Context) ([]*models.Client, error) {
	key := cache.ListKey(cache.ClientsPrefix)
	var clients []*models.Client
	if cache.GetJSON(ctx, key, &clients) {
		return clients, nil
	}

	clients, err := s.Repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, clients, cache.ListTTL)
	return clients, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, req *models.CreateEquipmentRequest) (*models.Equipment, error) {
	name := strings.TrimSpace(req.Name)
	typ := strings.TrimSpace(req.Type)

	var missing []string
	if req.ClientID <= 0 {
		missing = append(missing, "clientId")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if typ == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	installed, err := optionalDate("installationDate", req.InstallationDate)
	if err != nil {
		return nil, err
	}
	maintained, err := optionalDate("lastMaintenance", req.LastMaintenance)
	if err != nil {
		return nil, err
	}

	e := &models.Equipment{
		ClientID:         req.ClientID,
		Name:             name,
		Type:             typ,
		Brand:            optionalString(req.Brand),
		Model:            optionalString(req.Model),
		SerialNumber:     optionalString(req.SerialNumber),
		Location:         optionalString(req.Location),
		InstallationDate: installed,
		LastMaintenance:  maintained,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, referenceError(err, map[string]string{"equipment_client_id_fkey": "clientId"})
	}
	cache.InvalidatePrefix(ctx, cache.EquipmentPrefix)

	created, err := s.Repo.Get(ctx, e.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return created, nil
}

func (s *EquipmentService) ListEquipment(ctx context.Context, filter models.EquipmentFilter) ([]*models.Equipment, error) {
	key := cache.ListKey(cache.EquipmentPrefix, filter.ClientID)
	var list []*models.Equipment
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

// requiredDate parses a date field that must be present.
func requiredDate(field, value string) (time.Time, error) {
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, invalidValue(field, value)
	}
	return t, nil
}

// optionalDate parses a date field that may be empty.
func optionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := requiredDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
