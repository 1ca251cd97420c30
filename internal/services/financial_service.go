package services

import (
	"context"
	"strings"
	"time"

	"hvac-backend/internal/models"
	"hvac-backend/internal/timeutil"
)

var financialRefs = map[string]string{
	"financial_transactions_user_id_fkey":    "userId",
	"financial_transactions_service_id_fkey": "serviceId",
}

type FinancialService struct {
	Repo FinancialStore
	Now  func() time.Time
}

func NewFinancialService(repo FinancialStore) *FinancialService {
	return &FinancialService{Repo: repo, Now: timeutil.Now}
}

// CreateTransaction records a ledger entry. A transaction created as paid is
// stamped with the current time as its payment date.
func (s *FinancialService) CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (*models.FinancialTransaction, error) {
	typ := strings.TrimSpace(req.Type)
	description := strings.TrimSpace(req.Description)

	var missing []string
	if req.UserID <= 0 {
		missing = append(missing, "userId")
	}
	if typ == "" {
		missing = append(missing, "type")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if !req.Amount.IsSet() {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	if !models.ValidTransactionType(typ) {
		return nil, invalidValue("type", typ)
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.PaymentPending
	}
	if !models.ValidPaymentStatus(status) {
		return nil, invalidValue("status", status)
	}

	amount, err := positiveAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	due, err := optionalDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	t := &models.FinancialTransaction{
		UserID:        req.UserID,
		ServiceID:     positiveID(req.ServiceID),
		Type:          typ,
		Description:   description,
		Amount:        amount,
		DueDate:       due,
		PaymentMethod: optionalString(req.PaymentMethod),
		Notes:         optionalString(req.Notes),
	}
	applyPaymentStatus(t, status, "", s.Now())

	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, referenceError(err, financialRefs)
	}
	return s.GetTransaction(ctx, t.ID)
}

func (s *FinancialService) GetTransaction(ctx context.Context, id int) (*models.FinancialTransaction, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, invalidData(notFound(err))
	}
	return t, nil
}

// ListTransactions returns transactions newest first.
func (s *FinancialService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.FinancialTransaction, error) {
	if filter.Type != "" && !models.ValidTransactionType(filter.Type) {
		return nil, invalidValue("type", filter.Type)
	}
	if filter.Status != "" && !models.ValidPaymentStatus(filter.Status) {
		return nil, invalidValue("status", filter.Status)
	}
	return s.Repo.List(ctx, filter)
}

// UpdateStatus changes a transaction's payment status. It is the only path
// besides creation that touches paymentDate.
func (s *FinancialService) UpdateStatus(ctx context.Context, id int, req *models.UpdateTransactionStatusRequest) (*models.FinancialTransaction, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, missingFields("status")
	}
	if !models.ValidPaymentStatus(status) {
		return nil, invalidValue("status", status)
	}

	now := s.Now()
	t, err := s.Repo.UpdateStatus(ctx, id, func(t *models.FinancialTransaction) error {
		applyPaymentStatus(t, status, req.PaymentMethod, now)
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// applyPaymentStatus sets the status and keeps paymentDate consistent with
// it: paid keeps an existing date or stamps now, any other status clears it.
func applyPaymentStatus(t *models.FinancialTransaction, status, paymentMethod string, now time.Time) {
	t.Status = status
	if status == models.PaymentPaid {
		if t.PaymentDate == nil {
			t.PaymentDate = &now
		}
	} else {
		t.PaymentDate = nil
	}
	if m := optionalString(paymentMethod); m != nil {
		t.PaymentMethod = m
	}
}

func positiveAmount(n models.OptionalNumber) (float64, error) {
	v, err := n.Float()
	if err != nil || v == nil {
		return 0, invalidNumber("amount", n.String())
	}
	if *v <= 0 {
		return 0, invalidValue("amount", n.String())
	}
	return *v, nil
}
