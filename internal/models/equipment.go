package models

import "time"

// Client is a client profile joined with its user, as listed in the registry.
type Client struct {
	ID          int         `json:"id"`
	UserID      int         `json:"userId"`
	CompanyName string      `json:"companyName"`
	Document    *string     `json:"document"`
	Address     *string     `json:"address"`
	CreatedAt   time.Time   `json:"createdAt"`
	User        UserSummary `json:"user"`
}

// ClientSummary is the client block embedded in equipment, services and reports.
type ClientSummary struct {
	ID          int         `json:"id"`
	CompanyName string      `json:"companyName"`
	User        UserSummary `json:"user"`
}

type Equipment struct {
	ID               int            `json:"id"`
	ClientID         int            `json:"clientId"`
	Name             string         `json:"name"`
	Type             string         `json:"type"`
	Brand            *string        `json:"brand"`
	Model            *string        `json:"model"`
	SerialNumber     *string        `json:"serialNumber"`
	Location         *string        `json:"location"`
	InstallationDate *time.Time     `json:"installationDate"`
	LastMaintenance  *time.Time     `json:"lastMaintenance"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Client           *ClientSummary `json:"client,omitempty"`
}

type CreateEquipmentRequest struct {
	ClientID         int    `json:"clientId"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Brand            string `json:"brand"`
	Model            string `json:"model"`
	SerialNumber     string `json:"serialNumber"`
	Location         string `json:"location"`
	InstallationDate string `json:"installationDate"`
	LastMaintenance  string `json:"lastMaintenance"`
}

type EquipmentFilter struct {
	ClientID int
}
