package repositories

import (
	"context"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FinancialRepository struct {
	DB *pgxpool.Pool
}

func NewFinancialRepository(db *pgxpool.Pool) *FinancialRepository {
	return &FinancialRepository{DB: db}
}

func (r *FinancialRepository) Create(ctx context.Context, t *models.FinancialTransaction) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO financial_transactions(user_id, service_id, type, description, amount, status, due_date,
		                                    payment_date, payment_method, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.ServiceID, t.Type, t.Description, t.Amount, t.Status, t.DueDate,
		t.PaymentDate, t.PaymentMethod, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return translate(err)
}

// UpdateStatus locks the transaction row, lets apply mutate it and writes
// back status, payment date and payment method.
func (r *FinancialRepository) UpdateStatus(ctx context.Context, id int, apply func(*models.FinancialTransaction) error) (*models.FinancialTransaction, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var t models.FinancialTransaction
	err = tx.QueryRow(ctx,
		`SELECT id, status, payment_date, payment_method
		 FROM financial_transactions WHERE id=$1 FOR UPDATE`, id,
	).Scan(&t.ID, &t.Status, &t.PaymentDate, &t.PaymentMethod)
	if err != nil {
		return nil, translate(err)
	}

	if err := apply(&t); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE financial_transactions
		 SET status=$1, payment_date=$2, payment_method=$3, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$4`,
		t.Status, t.PaymentDate, t.PaymentMethod, id)
	if err != nil {
		return nil, translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

const financialSelect = `
	SELECT f.id, f.user_id, f.service_id, f.type, f.description, f.amount::float8, f.status, f.due_date,
	       f.payment_date, f.payment_method, f.notes, f.created_at, f.updated_at,
	       u.name, u.email, u.phone,
	       s.title, s.status, c.id, c.company_name, cu.id, cu.name, cu.email, cu.phone
	FROM financial_transactions f
	JOIN users u ON u.id = f.user_id
	LEFT JOIN service_requests s ON s.id = f.service_id
	LEFT JOIN clients c ON c.id = s.client_id
	LEFT JOIN users cu ON cu.id = c.user_id`

func scanFinancial(row rowScanner) (*models.FinancialTransaction, error) {
	var (
		t             models.FinancialTransaction
		user          models.UserSummary
		serviceTitle  *string
		serviceStatus *string
		clientID      *int
		companyName   *string
		cu            nullableUser
	)
	err := row.Scan(&t.ID, &t.UserID, &t.ServiceID, &t.Type, &t.Description, &t.Amount, &t.Status, &t.DueDate,
		&t.PaymentDate, &t.PaymentMethod, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
		&user.Name, &user.Email, &user.Phone,
		&serviceTitle, &serviceStatus, &clientID, &companyName, &cu.ID, &cu.Name, &cu.Email, &cu.Phone)
	if err != nil {
		return nil, err
	}

	user.ID = t.UserID
	t.User = &user
	if t.ServiceID != nil && serviceTitle != nil {
		t.Service = &models.ServiceSummary{ID: *t.ServiceID, Title: *serviceTitle, Status: deref(serviceStatus)}
		if clientID != nil {
			t.Service.Client = &models.ClientSummary{ID: *clientID, CompanyName: deref(companyName), User: cu.summary()}
		}
	}
	return &t, nil
}

func (r *FinancialRepository) Get(ctx context.Context, id int) (*models.FinancialTransaction, error) {
	t, err := scanFinancial(r.DB.QueryRow(ctx, financialSelect+" WHERE f.id=$1", id))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// List returns transactions newest first.
func (r *FinancialRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.FinancialTransaction, error) {
	f := transactionFilter(filter)

	rows, err := r.DB.Query(ctx, financialSelect+f.where()+" ORDER BY f.created_at DESC, f.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.FinancialTransaction{}
	for rows.Next() {
		t, err := scanFinancial(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// transactionFilter builds the WHERE clause of List. The date range applies
// to the creation time; the end is inclusive unless EndExclusive is set.
func transactionFilter(filter models.TransactionFilter) filterBuilder {
	var f filterBuilder
	if filter.Type != "" {
		f.add("f.type = $%d", filter.Type)
	}
	if filter.Status != "" {
		f.add("f.status = $%d", filter.Status)
	}
	if filter.UserID > 0 {
		f.add("f.user_id = $%d", filter.UserID)
	}
	if filter.StartDate != nil {
		f.add("f.created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		if filter.EndExclusive {
			f.add("f.created_at < $%d", *filter.EndDate)
		} else {
			f.add("f.created_at <= $%d", *filter.EndDate)
		}
	}
	return f
}
