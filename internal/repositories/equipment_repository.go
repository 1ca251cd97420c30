package repositories

import (
	"context"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepository struct {
	DB *pgxpool.Pool
}

func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{DB: db}
}

// ListClients returns every client profile with its user contact block.
func (r *EquipmentRepository) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.user_id, c.company_name, c.document, c.address, c.created_at,
		        u.id, u.name, u.email, u.phone
		 FROM clients c
		 JOIN users u ON u.id = c.user_id
		 ORDER BY c.company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []*models.Client{}
	for rows.Next() {
		var c models.Client
		err := rows.Scan(&c.ID, &c.UserID, &c.CompanyName, &c.Document, &c.Address, &c.CreatedAt,
			&c.User.ID, &c.User.Name, &c.User.Email, &c.User.Phone)
		if err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *EquipmentRepository) Create(ctx context.Context, e *models.Equipment) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO equipment(client_id, name, type, brand, model, serial_number, location, installation_date, last_maintenance)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		e.ClientID, e.Name, e.Type, e.Brand, e.Model, e.SerialNumber, e.Location, e.InstallationDate, e.LastMaintenance,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return translate(err)
}

const equipmentSelect = `
	SELECT e.id, e.client_id, e.name, e.type, e.brand, e.model, e.serial_number, e.location,
	       e.installation_date, e.last_maintenance, e.created_at, e.updated_at,
	       c.company_name, u.id, u.name, u.email, u.phone
	FROM equipment e
	JOIN clients c ON c.id = e.client_id
	JOIN users u ON u.id = c.user_id`

func scanEquipment(row rowScanner) (*models.Equipment, error) {
	var e models.Equipment
	client := &models.ClientSummary{}
	err := row.Scan(&e.ID, &e.ClientID, &e.Name, &e.Type, &e.Brand, &e.Model, &e.SerialNumber, &e.Location,
		&e.InstallationDate, &e.LastMaintenance, &e.CreatedAt, &e.UpdatedAt,
		&client.CompanyName, &client.User.ID, &client.User.Name, &client.User.Email, &client.User.Phone)
	if err != nil {
		return nil, err
	}
	client.ID = e.ClientID
	e.Client = client
	return &e, nil
}

func (r *EquipmentRepository) Get(ctx context.Context, id int) (*models.Equipment, error) {
	e, err := scanEquipment(r.DB.QueryRow(ctx, equipmentSelect+" WHERE e.id=$1", id))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter models.EquipmentFilter) ([]*models.Equipment, error) {
	var f filterBuilder
	if filter.ClientID > 0 {
		f.add("e.client_id = $%d", filter.ClientID)
	}

	rows, err := r.DB.Query(ctx, equipmentSelect+f.where()+" ORDER BY e.created_at DESC, e.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
