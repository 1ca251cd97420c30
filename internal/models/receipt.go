package models

import "time"

const (
	ReceiptIssued    = "issued"
	ReceiptPaid      = "paid"
	ReceiptPending   = "pending"
	ReceiptCancelled = "cancelled"
)

type Receipt struct {
	ID            int               `json:"id"`
	ReceiptNumber string            `json:"receiptNumber"`
	FinancialID   *int              `json:"financialId"`
	ServiceID     *int              `json:"serviceId"`
	Amount        float64           `json:"amount"`
	Description   string            `json:"description"`
	PaymentMethod *string           `json:"paymentMethod"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Financial     *FinancialSummary `json:"financial,omitempty"`
	Service       *ServiceSummary   `json:"service,omitempty"`
}

// FinancialSummary is the transaction block embedded in a receipt.
type FinancialSummary struct {
	ID          int          `json:"id"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	User        *UserSummary `json:"user,omitempty"`
}

// Payer returns the person a receipt is addressed to, if known.
func (r *Receipt) Payer() *UserSummary {
	if r.Financial != nil && r.Financial.User != nil {
		return r.Financial.User
	}
	if r.Service != nil && r.Service.Client != nil {
		return &r.Service.Client.User
	}
	return nil
}

type CreateReceiptRequest struct {
	FinancialID   *int           `json:"financialId"`
	ServiceID     *int           `json:"serviceId"`
	Amount        OptionalNumber `json:"amount"`
	Description   string         `json:"description"`
	PaymentMethod string         `json:"paymentMethod"`
	Status        string         `json:"status"`
}

type ReceiptFilter struct {
	FinancialID int
	Status      string
}

func ValidReceiptStatus(s string) bool {
	switch s {
	case ReceiptIssued, ReceiptPaid, ReceiptPending, ReceiptCancelled:
		return true
	}
	return false
}
