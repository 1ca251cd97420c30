package repositories

import (
	"context"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRequestRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRequestRepository(db *pgxpool.Pool) *ServiceRequestRepository {
	return &ServiceRequestRepository{DB: db}
}

func (r *ServiceRequestRepository) Create(ctx context.Context, s *models.ServiceRequest) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO service_requests(client_id, equipment_id, technician_id, title, description, status, priority,
		                              scheduled_date, estimated_cost)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		s.ClientID, s.EquipmentID, s.TechnicianID, s.Title, s.Description, s.Status, s.Priority,
		s.ScheduledDate, s.EstimatedCost,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translate(err)
}

// Update writes the mutable fields of a request.
func (r *ServiceRequestRepository) Update(ctx context.Context, s *models.ServiceRequest) error {
	err := r.DB.QueryRow(ctx,
		`UPDATE service_requests
		 SET status=$1, technician_id=$2, actual_cost=$3, scheduled_date=$4, completed_date=$5,
		     updated_at=CURRENT_TIMESTAMP
		 WHERE id=$6
		 RETURNING updated_at`,
		s.Status, s.TechnicianID, s.ActualCost, s.ScheduledDate, s.CompletedDate, s.ID,
	).Scan(&s.UpdatedAt)
	return translate(err)
}

const serviceRequestSelect = `
	SELECT sr.id, sr.client_id, sr.equipment_id, sr.technician_id, sr.title, sr.description, sr.status, sr.priority,
	       sr.scheduled_date, sr.completed_date, sr.estimated_cost::float8, sr.actual_cost::float8,
	       sr.created_at, sr.updated_at,
	       c.company_name, cu.id, cu.name, cu.email, cu.phone,
	       e.name, e.type, e.brand, e.model, e.serial_number, e.location,
	       t.license_number, tu.id, tu.name, tu.email, tu.phone
	FROM service_requests sr
	JOIN clients c ON c.id = sr.client_id
	JOIN users cu ON cu.id = c.user_id
	LEFT JOIN equipment e ON e.id = sr.equipment_id
	LEFT JOIN technicians t ON t.id = sr.technician_id
	LEFT JOIN users tu ON tu.id = t.user_id`

func scanServiceRequest(row rowScanner) (*models.ServiceRequest, error) {
	var (
		s       models.ServiceRequest
		client  models.ClientSummary
		eqName  *string
		eqType  *string
		eq      models.EquipmentSummary
		license *string
		tu      nullableUser
	)
	err := row.Scan(&s.ID, &s.ClientID, &s.EquipmentID, &s.TechnicianID, &s.Title, &s.Description, &s.Status, &s.Priority,
		&s.ScheduledDate, &s.CompletedDate, &s.EstimatedCost, &s.ActualCost,
		&s.CreatedAt, &s.UpdatedAt,
		&client.CompanyName, &client.User.ID, &client.User.Name, &client.User.Email, &client.User.Phone,
		&eqName, &eqType, &eq.Brand, &eq.Model, &eq.SerialNumber, &eq.Location,
		&license, &tu.ID, &tu.Name, &tu.Email, &tu.Phone)
	if err != nil {
		return nil, err
	}

	client.ID = s.ClientID
	s.Client = &client
	if s.EquipmentID != nil && eqName != nil {
		eq.ID = *s.EquipmentID
		eq.Name = *eqName
		eq.Type = deref(eqType)
		s.Equipment = &eq
	}
	if s.TechnicianID != nil && tu.ID != nil {
		s.Technician = &models.TechnicianSummary{
			ID:            *s.TechnicianID,
			LicenseNumber: deref(license),
			User:          tu.summary(),
		}
	}
	return &s, nil
}

// nullableUser receives the columns of a LEFT JOINed users row.
type nullableUser struct {
	ID    *int
	Name  *string
	Email *string
	Phone *string
}

func (n nullableUser) summary() models.UserSummary {
	s := models.UserSummary{Name: deref(n.Name), Email: deref(n.Email), Phone: n.Phone}
	if n.ID != nil {
		s.ID = *n.ID
	}
	return s
}

func (r *ServiceRequestRepository) Get(ctx context.Context, id int) (*models.ServiceRequest, error) {
	s, err := scanServiceRequest(r.DB.QueryRow(ctx, serviceRequestSelect+" WHERE sr.id=$1", id))
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// List returns requests newest first.
func (r *ServiceRequestRepository) List(ctx context.Context, filter models.ServiceRequestFilter) ([]*models.ServiceRequest, error) {
	var f filterBuilder
	if filter.Status != "" {
		f.add("sr.status = $%d", filter.Status)
	}
	if filter.Priority != "" {
		f.add("sr.priority = $%d", filter.Priority)
	}
	if filter.ClientID > 0 {
		f.add("sr.client_id = $%d", filter.ClientID)
	}
	if filter.TechnicianID > 0 {
		f.add("sr.technician_id = $%d", filter.TechnicianID)
	}

	rows, err := r.DB.Query(ctx, serviceRequestSelect+f.where()+" ORDER BY sr.created_at DESC, sr.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.ServiceRequest{}
	for rows.Next() {
		s, err := scanServiceRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
