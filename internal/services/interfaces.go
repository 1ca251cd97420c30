package services

import (
	"context"

	"hvac-backend/internal/models"
)

// Store interfaces are satisfied by the pgx repositories and by test doubles.

type UserStore interface {
	Register(ctx context.Context, u *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

type EquipmentStore interface {
	ListClients(ctx context.Context) ([]*models.Client, error)
	Create(ctx context.Context, e *models.Equipment) error
	Get(ctx context.Context, id int) (*models.Equipment, error)
	List(ctx context.Context, filter models.EquipmentFilter) ([]*models.Equipment, error)
}

type ServiceRequestStore interface {
	Create(ctx context.Context, s *models.ServiceRequest) error
	Update(ctx context.Context, s *models.ServiceRequest) error
	Get(ctx context.Context, id int) (*models.ServiceRequest, error)
	List(ctx context.Context, filter models.ServiceRequestFilter) ([]*models.ServiceRequest, error)
}

type PMOCStore interface {
	Create(ctx context.Context, report *models.PMOCReport, images []models.ReportImageInput) error
	Get(ctx context.Context, id int) (*models.PMOCReport, error)
	List(ctx context.Context, filter models.PMOCFilter) ([]*models.PMOCReport, error)
	ReplaceImages(ctx context.Context, reportID int, images []models.ReportImageInput) ([]models.ReportImage, error)
	ListImages(ctx context.Context, reportID int) ([]models.ReportImage, error)
}

type FinancialStore interface {
	Create(ctx context.Context, t *models.FinancialTransaction) error
	Get(ctx context.Context, id int) (*models.FinancialTransaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]*models.FinancialTransaction, error)
	UpdateStatus(ctx context.Context, id int, apply func(*models.FinancialTransaction) error) (*models.FinancialTransaction, error)
}

type ReceiptStore interface {
	Create(ctx context.Context, r *models.Receipt) error
	Get(ctx context.Context, id int) (*models.Receipt, error)
	List(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error)
}

// ObjectStore is the image bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
