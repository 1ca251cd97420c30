package models

import "time"

const (
	ServiceStatusPending    = "pending"
	ServiceStatusAssigned   = "assigned"
	ServiceStatusInProgress = "in_progress"
	ServiceStatusCompleted  = "completed"
	ServiceStatusCancelled  = "cancelled"
)

const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

type ServiceRequest struct {
	ID            int                `json:"id"`
	ClientID      int                `json:"clientId"`
	EquipmentID   *int               `json:"equipmentId"`
	TechnicianID  *int               `json:"technicianId"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Status        string             `json:"status"`
	Priority      string             `json:"priority"`
	ScheduledDate *time.Time         `json:"scheduledDate"`
	CompletedDate *time.Time         `json:"completedDate"`
	EstimatedCost *float64           `json:"estimatedCost"`
	ActualCost    *float64           `json:"actualCost"`
	CreatedAt     time.Time          `json:"requestedDate"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Client        *ClientSummary     `json:"client,omitempty"`
	Equipment     *EquipmentSummary  `json:"equipment,omitempty"`
	Technician    *TechnicianSummary `json:"technician,omitempty"`
}

type EquipmentSummary struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serialNumber"`
	Location     *string `json:"location"`
}

type TechnicianSummary struct {
	ID            int         `json:"id"`
	LicenseNumber string      `json:"licenseNumber"`
	User          UserSummary `json:"user"`
}

// ServiceSummary is the service block embedded in reports, transactions and receipts.
type ServiceSummary struct {
	ID     int            `json:"id"`
	Title  string         `json:"title"`
	Status string         `json:"status,omitempty"`
	Client *ClientSummary `json:"client,omitempty"`
}

type CreateServiceRequest struct {
	ClientID      int            `json:"clientId"`
	EquipmentID   *int           `json:"equipmentId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Priority      string         `json:"priority"`
	ScheduledDate string         `json:"scheduledDate"`
	EstimatedCost OptionalNumber `json:"estimatedCost"`
}

type UpdateServiceRequest struct {
	Status        string         `json:"status"`
	TechnicianID  *int           `json:"technicianId"`
	ActualCost    OptionalNumber `json:"actualCost"`
	ScheduledDate string         `json:"scheduledDate"`
}

type ServiceRequestFilter struct {
	Status       string
	Priority     string
	ClientID     int
	TechnicianID int
}

func ValidServiceStatus(s string) bool {
	switch s {
	case ServiceStatusPending, ServiceStatusAssigned, ServiceStatusInProgress,
		ServiceStatusCompleted, ServiceStatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency:
		return true
	}
	return false
}
