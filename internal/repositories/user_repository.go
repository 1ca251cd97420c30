package repositories

import (
	"context"
	"fmt"
	"strings"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Register inserts the user and its role profile in one transaction. A
// failing profile insert leaves no user row behind.
func (r *UserRepository) Register(ctx context.Context, u *models.User) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role, phone, is_active)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	if p := u.ClientProfile; p != nil {
		p.UserID = u.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO clients(user_id, company_name, document, address)
			 VALUES($1, $2, $3, $4) RETURNING id`,
			p.UserID, p.CompanyName, p.Document, p.Address,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("failed to create client profile: %w", translate(err))
		}
	}

	if p := u.TechnicianProfile; p != nil {
		p.UserID = u.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO technicians(user_id, license_number, specialty, hourly_rate, available)
			 VALUES($1, $2, $3, $4, $5) RETURNING id`,
			p.UserID, p.LicenseNumber, p.Specialty, p.HourlyRate, p.Available,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("failed to create technician profile: %w", translate(err))
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, "u.id=$1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "u.email=$1", email)
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.phone, u.is_active, u.created_at, u.updated_at,
	       c.id, c.company_name, c.document, c.address,
	       t.id, t.license_number, t.specialty, t.hourly_rate::float8, t.available
	FROM users u
	LEFT JOIN clients c ON c.user_id = u.id
	LEFT JOIN technicians t ON t.user_id = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u             models.User
		clientID      *int
		companyName   *string
		document      *string
		address       *string
		techID        *int
		licenseNumber *string
		specialty     *string
		hourlyRate    *float64
		available     *bool
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
		&clientID, &companyName, &document, &address,
		&techID, &licenseNumber, &specialty, &hourlyRate, &available)
	if err != nil {
		return nil, err
	}

	if clientID != nil {
		u.ClientProfile = &models.ClientProfile{
			ID:          *clientID,
			UserID:      u.ID,
			CompanyName: deref(companyName),
			Document:    document,
			Address:     address,
		}
	}
	if techID != nil {
		u.TechnicianProfile = &models.TechnicianProfile{
			ID:            *techID,
			UserID:        u.ID,
			LicenseNumber: deref(licenseNumber),
			Specialty:     specialty,
			HourlyRate:    hourlyRate,
			Available:     available != nil && *available,
		}
	}
	return &u, nil
}

func (r *UserRepository) getOne(ctx context.Context, cond string, arg any) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, userSelect+" WHERE "+cond, arg))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// List returns users newest first, optionally filtered by role and by a
// case-insensitive match on name or email.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	var f filterBuilder
	if filter.Role != "" {
		f.add("u.role = $%d", filter.Role)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		f.add("(u.name ILIKE $%[1]d OR u.email ILIKE $%[1]d)", "%"+s+"%")
	}

	rows, err := r.DB.Query(ctx, userSelect+f.where()+" ORDER BY u.created_at DESC, u.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
