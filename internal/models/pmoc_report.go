package models

import "time"

const (
	ComplianceCompliant    = "compliant"
	ComplianceNonCompliant = "non_compliant"
	CompliancePartial      = "partial"
	CompliancePending      = "pending"
)

// PMOCReport is a preventive maintenance inspection (Lei 13.589/2018).
type PMOCReport struct {
	ID                 int                `json:"id"`
	ReportNumber       string             `json:"reportNumber"`
	EquipmentID        int                `json:"equipmentId"`
	TechnicianID       int                `json:"technicianId"`
	ServiceID          *int               `json:"serviceId"`
	InspectionDate     time.Time          `json:"inspectionDate"`
	NextInspection     time.Time          `json:"nextInspection"`
	Findings           string             `json:"findings"`
	Recommendations    string             `json:"recommendations"`
	ComplianceStatus   string             `json:"complianceStatus"`
	Temperature        *float64           `json:"temperature"`
	Pressure           *float64           `json:"pressure"`
	GasLevel           *float64           `json:"gasLevel"`
	ElectricalReadings *string            `json:"electricalReadings"`
	CreatedAt          time.Time          `json:"generatedAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	Equipment          *ReportEquipment   `json:"equipment,omitempty"`
	Technician         *TechnicianSummary `json:"technician,omitempty"`
	Service            *ServiceSummary    `json:"service"`
	Images             []ReportImage      `json:"images"`
}

// ReportEquipment is the equipment block of a report, carrying the owning client.
type ReportEquipment struct {
	EquipmentSummary
	Client ClientSummary `json:"client"`
}

type ReportImage struct {
	ID          int       `json:"id"`
	ReportID    int       `json:"reportId"`
	URL         string    `json:"url"`
	Path        *string   `json:"path"`
	Filename    string    `json:"filename"`
	ContentType *string   `json:"contentType"`
	Size        int64     `json:"size"`
	Compressed  bool      `json:"compressed"`
	Description *string   `json:"description"`
	UploadDate  time.Time `json:"uploadDate"`
}

// ReportImageInput describes one image of a report, usually the output of an upload.
type ReportImageInput struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Compressed  bool   `json:"compressed"`
	Description string `json:"description"`
}

type CreatePMOCRequest struct {
	EquipmentID        int                `json:"equipmentId"`
	TechnicianID       int                `json:"technicianId"`
	ServiceID          *int               `json:"serviceId"`
	InspectionDate     string             `json:"inspectionDate"`
	NextInspection     string             `json:"nextInspection"`
	Findings           string             `json:"findings"`
	Recommendations    string             `json:"recommendations"`
	ComplianceStatus   string             `json:"complianceStatus"`
	Temperature        OptionalNumber     `json:"temperature"`
	Pressure           OptionalNumber     `json:"pressure"`
	GasLevel           OptionalNumber     `json:"gasLevel"`
	ElectricalReadings string             `json:"electricalReadings"`
	Images             []ReportImageInput `json:"images"`
}

type ReplaceImagesRequest struct {
	Images []ReportImageInput `json:"images"`
}

type PMOCFilter struct {
	EquipmentID      int
	TechnicianID     int
	ComplianceStatus string
}

func ValidComplianceStatus(s string) bool {
	switch s {
	case ComplianceCompliant, ComplianceNonCompliant, CompliancePartial, CompliancePending:
		return true
	}
	return false
}
