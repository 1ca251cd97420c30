package repositories

import (
	"context"
	"fmt"

	"hvac-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PMOCRepository struct {
	DB *pgxpool.Pool
}

func NewPMOCRepository(db *pgxpool.Pool) *PMOCRepository {
	return &PMOCRepository{DB: db}
}

// Create numbers and inserts a report together with its initial images.
// The report number is taken from the pmoc_report counter inside the same
// transaction, so a failed insert does not consume a number.
func (r *PMOCRepository) Create(ctx context.Context, report *models.PMOCReport, images []models.ReportImageInput) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	n, err := nextCounterValue(ctx, tx, CounterPMOCReport)
	if err != nil {
		return err
	}
	report.ReportNumber = FormatDocumentNumber(PMOCPrefix, n)

	err = tx.QueryRow(ctx,
		`INSERT INTO pmoc_reports(report_number, equipment_id, technician_id, service_id, inspection_date, next_inspection,
		                          findings, recommendations, compliance_status, temperature, pressure, gas_level,
		                          electrical_readings)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		report.ReportNumber, report.EquipmentID, report.TechnicianID, report.ServiceID,
		report.InspectionDate, report.NextInspection, report.Findings, report.Recommendations,
		report.ComplianceStatus, report.Temperature, report.Pressure, report.GasLevel, report.ElectricalReadings,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	report.Images, err = insertImages(ctx, tx, report.ID, images)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ReplaceImages deletes every image of the report and inserts the given set
// in one transaction. An empty set clears the report's images.
func (r *PMOCRepository) ReplaceImages(ctx context.Context, reportID int, images []models.ReportImageInput) ([]models.ReportImage, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(ctx, `SELECT id FROM pmoc_reports WHERE id=$1 FOR UPDATE`, reportID).Scan(&id); err != nil {
		return nil, translate(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM report_images WHERE report_id=$1`, reportID); err != nil {
		return nil, err
	}

	inserted, err := insertImages(ctx, tx, reportID, images)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE pmoc_reports SET updated_at=CURRENT_TIMESTAMP WHERE id=$1`, reportID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

func insertImages(ctx context.Context, tx pgx.Tx, reportID int, images []models.ReportImageInput) ([]models.ReportImage, error) {
	out := make([]models.ReportImage, 0, len(images))
	for _, in := range images {
		img := models.ReportImage{
			ReportID:    reportID,
			URL:         in.URL,
			Path:        nullIfEmpty(in.Path),
			Filename:    in.Filename,
			ContentType: nullIfEmpty(in.ContentType),
			Size:        in.Size,
			Compressed:  in.Compressed,
			Description: nullIfEmpty(in.Description),
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO report_images(report_id, url, storage_path, filename, content_type, file_size, compressed, description)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id, upload_date`,
			img.ReportID, img.URL, img.Path, img.Filename, img.ContentType, img.Size, img.Compressed, img.Description,
		).Scan(&img.ID, &img.UploadDate)
		if err != nil {
			return nil, fmt.Errorf("failed to insert report image: %w", translate(err))
		}
		out = append(out, img)
	}
	return out, nil
}

// ListImages returns the images of a report ordered by upload date.
func (r *PMOCRepository) ListImages(ctx context.Context, reportID int) ([]models.ReportImage, error) {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pmoc_reports WHERE id=$1)`, reportID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	byReport, err := r.imagesFor(ctx, []int{reportID})
	if err != nil {
		return nil, err
	}
	images := byReport[reportID]
	if images == nil {
		images = []models.ReportImage{}
	}
	return images, nil
}

func (r *PMOCRepository) imagesFor(ctx context.Context, reportIDs []int) (map[int][]models.ReportImage, error) {
	out := make(map[int][]models.ReportImage, len(reportIDs))
	if len(reportIDs) == 0 {
		return out, nil
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, report_id, url, storage_path, filename, content_type, file_size, compressed, description, upload_date
		 FROM report_images
		 WHERE report_id = ANY($1)
		 ORDER BY upload_date, id`,
		reportIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ReportImage
		err := rows.Scan(&img.ID, &img.ReportID, &img.URL, &img.Path, &img.Filename, &img.ContentType,
			&img.Size, &img.Compressed, &img.Description, &img.UploadDate)
		if err != nil {
			return nil, err
		}
		out[img.ReportID] = append(out[img.ReportID], img)
	}
	return out, rows.Err()
}

const pmocSelect = `
	SELECT p.id, p.report_number, p.equipment_id, p.technician_id, p.service_id, p.inspection_date, p.next_inspection,
	       p.findings, p.recommendations, p.compliance_status, p.temperature, p.pressure, p.gas_level,
	       p.electrical_readings, p.created_at, p.updated_at,
	       e.name, e.type, e.brand, e.model, e.serial_number, e.location,
	       c.id, c.company_name, cu.id, cu.name, cu.email, cu.phone,
	       t.license_number, tu.id, tu.name, tu.email, tu.phone,
	       s.title
	FROM pmoc_reports p
	JOIN equipment e ON e.id = p.equipment_id
	JOIN clients c ON c.id = e.client_id
	JOIN users cu ON cu.id = c.user_id
	JOIN technicians t ON t.id = p.technician_id
	JOIN users tu ON tu.id = t.user_id
	LEFT JOIN service_requests s ON s.id = p.service_id`

func scanPMOC(row rowScanner) (*models.PMOCReport, error) {
	var (
		p            models.PMOCReport
		eq           models.ReportEquipment
		tech         models.TechnicianSummary
		serviceTitle *string
	)
	err := row.Scan(&p.ID, &p.ReportNumber, &p.EquipmentID, &p.TechnicianID, &p.ServiceID, &p.InspectionDate, &p.NextInspection,
		&p.Findings, &p.Recommendations, &p.ComplianceStatus, &p.Temperature, &p.Pressure, &p.GasLevel,
		&p.ElectricalReadings, &p.CreatedAt, &p.UpdatedAt,
		&eq.Name, &eq.Type, &eq.Brand, &eq.Model, &eq.SerialNumber, &eq.Location,
		&eq.Client.ID, &eq.Client.CompanyName, &eq.Client.User.ID, &eq.Client.User.Name, &eq.Client.User.Email, &eq.Client.User.Phone,
		&tech.LicenseNumber, &tech.User.ID, &tech.User.Name, &tech.User.Email, &tech.User.Phone,
		&serviceTitle)
	if err != nil {
		return nil, err
	}

	eq.ID = p.EquipmentID
	p.Equipment = &eq
	tech.ID = p.TechnicianID
	p.Technician = &tech
	if p.ServiceID != nil && serviceTitle != nil {
		p.Service = &models.ServiceSummary{ID: *p.ServiceID, Title: *serviceTitle}
	}
	p.Images = []models.ReportImage{}
	return &p, nil
}

func (r *PMOCRepository) Get(ctx context.Context, id int) (*models.PMOCReport, error) {
	p, err := scanPMOC(r.DB.QueryRow(ctx, pmocSelect+" WHERE p.id=$1", id))
	if err != nil {
		return nil, translate(err)
	}

	images, err := r.imagesFor(ctx, []int{p.ID})
	if err != nil {
		return nil, err
	}
	if imgs := images[p.ID]; imgs != nil {
		p.Images = imgs
	}
	return p, nil
}

// List returns reports newest first with their images attached.
func (r *PMOCRepository) List(ctx context.Context, filter models.PMOCFilter) ([]*models.PMOCReport, error) {
	var f filterBuilder
	if filter.EquipmentID > 0 {
		f.add("p.equipment_id = $%d", filter.EquipmentID)
	}
	if filter.TechnicianID > 0 {
		f.add("p.technician_id = $%d", filter.TechnicianID)
	}
	if filter.ComplianceStatus != "" {
		f.add("p.compliance_status = $%d", filter.ComplianceStatus)
	}

	rows, err := r.DB.Query(ctx, pmocSelect+f.where()+" ORDER BY p.created_at DESC, p.id DESC", f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*models.PMOCReport{}
	ids := []int{}
	for rows.Next() {
		p, err := scanPMOC(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range reports {
		if imgs := images[p.ID]; imgs != nil {
			p.Images = imgs
		}
	}
	return reports, nil
}
