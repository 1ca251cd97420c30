package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

type FinancialTransaction struct {
	ID            int             `json:"id"`
	UserID        int             `json:"userId"`
	ServiceID     *int            `json:"serviceId"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	Status        string          `json:"status"`
	DueDate       *time.Time      `json:"dueDate"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	PaymentMethod *string         `json:"paymentMethod"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	User          *UserSummary    `json:"user,omitempty"`
	Service       *ServiceSummary `json:"service"`
}

type CreateTransactionRequest struct {
	UserID        int            `json:"userId"`
	ServiceID     *int           `json:"serviceId"`
	Type          string         `json:"type"`
	Description   string         `json:"description"`
	Amount        OptionalNumber `json:"amount"`
	Status        string         `json:"status"`
	DueDate       string         `json:"dueDate"`
	PaymentMethod string         `json:"paymentMethod"`
	Notes         string         `json:"notes"`
}

type UpdateTransactionStatusRequest struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
}

type TransactionFilter struct {
	Type      string
	Status    string
	UserID    int
	StartDate *time.Time
	EndDate   *time.Time
	// EndExclusive is set when EndDate is the start of the day after the range.
	EndExclusive bool
}

func ValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}
