package services

import (
	"context"
	"errors"
	"strings"

	"hvac-backend/internal/metrics"
	"hvac-backend/internal/models"
	"hvac-backend/internal/repositories"

	"go.uber.org/zap"
)

const receiptNumberConstraint = "receipts_receipt_number_key"

var receiptRefs = map[string]string{
	"receipts_financial_id_fkey": "financialId",
	"receipts_service_id_fkey":   "serviceId",
}

type ReceiptService struct {
	Repo ReceiptStore
}

func NewReceiptService(repo ReceiptStore) *ReceiptService {
	return &ReceiptService{Repo: repo}
}

// CreateReceipt issues a REC-NNNNNN receipt for a transaction or a service.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *models.CreateReceiptRequest) (*models.Receipt, error) {
	financialID := positiveID(req.FinancialID)
	serviceID := positiveID(req.ServiceID)
	description := strings.TrimSpace(req.Description)

	var missing []string
	if financialID == nil && serviceID == nil {
		missing = append(missing, "financialId|serviceId")
	}
	if !req.Amount.IsSet() {
		missing = append(missing, "amount")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	amount, err := positiveAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.ReceiptIssued
	}
	if !models.ValidReceiptStatus(status) {
		return nil, invalidValue("status", status)
	}

	rc := &models.Receipt{
		FinancialID:   financialID,
		ServiceID:     serviceID,
		Amount:        amount,
		Description:   description,
		PaymentMethod: optionalString(req.PaymentMethod),
		Status:        status,
	}
	if err := s.Repo.Create(ctx, rc); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) && repositories.ViolatedConstraint(err) == receiptNumberConstraint {
			zap.S().Errorw("[Receipts] Receipt number collision", "receipt_number", rc.ReceiptNumber, "error", err)
			return nil, ErrDuplicateNumber
		}
		return nil, referenceError(err, receiptRefs)
	}

	metrics.DocumentsIssued.WithLabelValues("receipt").Inc()
	zap.S().Infow("[Receipts] Receipt created", "receipt_id", rc.ID, "receipt_number", rc.ReceiptNumber)

	return s.GetReceipt(ctx, rc.ID)
}

func (s *ReceiptService) GetReceipt(ctx context.Context, id int) (*models.Receipt, error) {
	rc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return rc, nil
}

func (s *ReceiptService) ListReceipts(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	if filter.Status != "" && !models.ValidReceiptStatus(filter.Status) {
		return nil, invalidValue("status", filter.Status)
	}
	return s.Repo.List(ctx, filter)
}
