package repositories

import (
	"context"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

// Create numbers and inserts a receipt in one transaction, drawing from the
// receipt counter the same way reports do.
func (r *ReceiptRepository) Create(ctx context.Context, rc *models.Receipt) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	n, err := nextCounterValue(ctx, tx, CounterReceipt)
	if err != nil {
		return err
	}
	rc.ReceiptNumber = FormatDocumentNumber(ReceiptPrefix, n)

	err = tx.QueryRow(ctx,
		`INSERT INTO receipts(receipt_number, financial_id, service_id, amount, description, payment_method, status)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		rc.ReceiptNumber, rc.FinancialID, rc.ServiceID, rc.Amount, rc.Description, rc.PaymentMethod, rc.Status,
	).Scan(&rc.ID, &rc.CreatedAt, &rc.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	return tx.Commit(ctx)
}

const receiptSelect = `
	SELECT r.id, r.receipt_number, r.financial_id, r.service_id, r.amount::float8, r.description, r.payment_method,
	       r.status, r.created_at, r.updated_at,
	       f.type, f.description, f.status, fu.id, fu.name, fu.email, fu.phone,
	       s.title, s.status, c.id, c.company_name, cu.id, cu.name, cu.email, cu.phone
	FROM receipts r
	LEFT JOIN financial_transactions f ON f.id = r.financial_id
	LEFT JOIN users fu ON fu.id = f.user_id
	LEFT JOIN service_requests s ON s.id = r.service_id
	LEFT JOIN clients c ON c.id = s.client_id
	LEFT JOIN users cu ON cu.id = c.user_id`

func scanReceipt(row rowScanner) (*models.Receipt, error) {
	var (
		rc            models.Receipt
		finType       *string
		finDesc       *string
		finStatus     *string
		fu            nullableUser
		serviceTitle  *string
		serviceStatus *string
		clientID      *int
		companyName   *string
		cu            nullableUser
	)
	err := row.Scan(&rc.ID, &rc.ReceiptNumber, &rc.FinancialID, &rc.ServiceID, &rc.Amount, &rc.Description, &rc.PaymentMethod,
		&rc.Status, &rc.CreatedAt, &rc.UpdatedAt,
		&finType, &finDesc, &finStatus, &fu.ID, &fu.Name, &fu.Email, &fu.Phone,
		&serviceTitle, &serviceStatus, &clientID, &companyName, &cu.ID, &cu.Name, &cu.Email, &cu.Phone)
	if err != nil {
		return nil, err
	}

	if rc.FinancialID != nil && finType != nil {
		rc.Financial = &models.FinancialSummary{
			ID:          *rc.FinancialID,
			Type:        *finType,
			Description: deref(finDesc),
			Status:      deref(finStatus),
		}
		if fu.ID != nil {
			u := fu.summary()
			rc.Financial.User = &u
		}
	}
	if rc.ServiceID != nil && serviceTitle != nil {
		rc.Service = &models.ServiceSummary{ID: *rc.ServiceID, Title: *serviceTitle, Status: deref(serviceStatus)}
		if clientID != nil {
			rc.Service.Client = &models.ClientSummary{ID: *clientID, CompanyName: deref(companyName), User: cu.summary()}
		}
	}
	return &rc, nil
}

func (r *ReceiptRepository) Get(ctx context.Context, id int) (*models.Receipt, error) {
	rc, err := scanReceipt(r.DB.QueryRow(ctx, receiptSelect+" WHERE r.id=$1", id))
	if err != nil {
		return nil, translate(err)
	}
	return rc, nil
}

func (r *ReceiptRepository) List(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	var f filterBuilder
	if filter.FinancialID > 0 {
		f.add("r.financial_id = $%d", filter.FinancialID)
	}
	if filter.Status != "" {
		f.add("r.status = $%d", filter.Status)
	}

	rows, err := r.DB.Query(ctx, receiptSelect+f.where()+" ORDER BY r.created_at DESC, r.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Receipt{}
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}
