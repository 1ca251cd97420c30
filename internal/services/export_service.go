package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hvac-backend/internal/models"
	"hvac-backend/internal/timeutil"
	"hvac-backend/internal/whatsapp"

	"github.com/jung-kurt/gofpdf/v2"
)

// document is the layout shared by the text and PDF renditions.
type document struct {
	Title    string
	Subtitle string
	Header   []string
	Sections []section
	Footer   string
}

type section struct {
	Title string
	Lines []string
}

var complianceLabels = map[string]string{
	models.ComplianceCompliant:    "CONFORME",
	models.ComplianceNonCompliant: "NÃO CONFORME",
	models.CompliancePartial:      "PARCIALMENTE CONFORME",
	models.CompliancePending:      "PENDENTE",
}

var receiptStatusLabels = map[string]string{
	models.ReceiptIssued:    "EMITIDO",
	models.ReceiptPaid:      "PAGO",
	models.ReceiptPending:   "PENDENTE",
	models.ReceiptCancelled: "CANCELADO",
}

type ExportService struct {
	Now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{Now: timeutil.Now}
}

func (s *ExportService) ReportText(report *models.PMOCReport) string {
	return RenderReportText(report, report.Images, s.Now())
}

func (s *ExportService) ReportPDF(report *models.PMOCReport) ([]byte, error) {
	return renderPDF(reportDocument(report, report.Images, s.Now()))
}

// ReportShare returns the report text and a WhatsApp link addressed to the client.
func (s *ExportService) ReportShare(report *models.PMOCReport) models.ShareLink {
	text := s.ReportText(report)
	var phone string
	if report.Equipment != nil {
		phone = deref(report.Equipment.Client.User.Phone)
	}
	return models.ShareLink{Text: text, WhatsappURL: whatsapp.ShareURL(phone, text)}
}

func (s *ExportService) ReceiptText(rc *models.Receipt) string {
	return RenderReceiptText(rc, s.Now())
}

func (s *ExportService) ReceiptPDF(rc *models.Receipt) ([]byte, error) {
	return renderPDF(receiptDocument(rc, s.Now()))
}

// ReceiptShare returns the receipt text and a WhatsApp link addressed to the payer.
func (s *ExportService) ReceiptShare(rc *models.Receipt) models.ShareLink {
	text := s.ReceiptText(rc)
	var phone string
	if payer := rc.Payer(); payer != nil {
		phone = deref(payer.Phone)
	}
	return models.ShareLink{Text: text, WhatsappURL: whatsapp.ShareURL(phone, text)}
}

func ReportFilename(report *models.PMOCReport) string {
	return "pmoc-" + report.ReportNumber + ".pdf"
}

func ReceiptFilename(rc *models.Receipt) string {
	return "recibo-" + rc.ReceiptNumber + ".pdf"
}

// RenderReportText produces the fixed-layout text of a PMOC report.
func RenderReportText(report *models.PMOCReport, images []models.ReportImage, generatedAt time.Time) string {
	return renderText(reportDocument(report, images, generatedAt))
}

// RenderReceiptText produces the fixed-layout text of a receipt.
func RenderReceiptText(rc *models.Receipt, generatedAt time.Time) string {
	return renderText(receiptDocument(rc, generatedAt))
}

func reportDocument(report *models.PMOCReport, images []models.ReportImage, generatedAt time.Time) document {
	status, ok := complianceLabels[report.ComplianceStatus]
	if !ok {
		status = strings.ToUpper(report.ComplianceStatus)
	}

	doc := document{
		Title:    "RELATÓRIO PMOC - " + report.ReportNumber,
		Subtitle: "Lei nº 13.589/2018 - Programa de Manutenção Preventiva Obrigatória",
		Header: []string{
			"Data de Emissão: " + timeutil.FormatDate(report.CreatedAt),
			"Data da Inspeção: " + timeutil.FormatDay(report.InspectionDate),
			"Próxima Inspeção: " + timeutil.FormatDay(report.NextInspection),
			"STATUS: " + status,
		},
		Footer: "Documento gerado em " + timeutil.FormatBRT(generatedAt, timeutil.DisplayDateTimeLayout),
	}

	if eq := report.Equipment; eq != nil {
		doc.Sections = append(doc.Sections,
			section{Title: "CLIENTE", Lines: []string{
				"Empresa: " + eq.Client.CompanyName,
				"Responsável: " + eq.Client.User.Name,
				"Email: " + eq.Client.User.Email,
				"Telefone: " + orDash(deref(eq.Client.User.Phone)),
			}},
			section{Title: "EQUIPAMENTO", Lines: []string{
				"Nome: " + eq.Name,
				"Tipo: " + eq.Type,
				"Marca/Modelo: " + orDash(strings.TrimSpace(deref(eq.Brand)+" "+deref(eq.Model))),
				"Número de Série: " + orDash(deref(eq.SerialNumber)),
				"Localização: " + orDash(deref(eq.Location)),
			}},
		)
	}

	if t := report.Technician; t != nil {
		doc.Sections = append(doc.Sections, section{Title: "RESPONSÁVEL TÉCNICO", Lines: []string{
			"Nome: " + t.User.Name,
			"Registro: " + orDash(t.LicenseNumber),
			"Email: " + t.User.Email,
		}})
	}

	if report.Service != nil {
		doc.Sections = append(doc.Sections, section{Title: "ORDEM DE SERVIÇO", Lines: []string{
			fmt.Sprintf("#%d - %s", report.Service.ID, report.Service.Title),
		}})
	}

	doc.Sections = append(doc.Sections,
		section{Title: "MEDIÇÕES", Lines: []string{
			"Temperatura: " + measurement(report.Temperature, " °C"),
			"Pressão: " + measurement(report.Pressure, " PSI"),
			"Nível de Gás: " + measurement(report.GasLevel, "%"),
			"Leituras Elétricas: " + orDash(deref(report.ElectricalReadings)),
		}},
		section{Title: "OBSERVAÇÕES", Lines: splitLines(report.Findings)},
		section{Title: "RECOMENDAÇÕES", Lines: splitLines(report.Recommendations)},
	)

	imageLines := []string{fmt.Sprintf("%d imagem(ns)", len(images))}
	for _, img := range images {
		line := "- " + img.Filename
		if d := deref(img.Description); d != "" {
			line += ": " + d
		}
		imageLines = append(imageLines, line)
	}
	doc.Sections = append(doc.Sections, section{Title: "IMAGENS ANEXADAS", Lines: imageLines})

	return doc
}

func receiptDocument(rc *models.Receipt, generatedAt time.Time) document {
	status, ok := receiptStatusLabels[rc.Status]
	if !ok {
		status = strings.ToUpper(rc.Status)
	}

	doc := document{
		Title: "RECIBO DE PAGAMENTO - " + rc.ReceiptNumber,
		Header: []string{
			"Data: " + timeutil.FormatDate(rc.CreatedAt),
			"Valor: " + FormatBRL(rc.Amount),
			"Status: " + status,
		},
		Footer: "Documento gerado em " + timeutil.FormatBRT(generatedAt, timeutil.DisplayDateTimeLayout),
	}

	payerLines := []string{"-"}
	if payer := rc.Payer(); payer != nil {
		payerLines = []string{
			"Nome: " + payer.Name,
			"Email: " + payer.Email,
			"Telefone: " + orDash(deref(payer.Phone)),
		}
		if rc.Service != nil && rc.Service.Client != nil {
			payerLines = append([]string{"Empresa: " + rc.Service.Client.CompanyName}, payerLines...)
		}
	}
	doc.Sections = append(doc.Sections, section{Title: "RECEBEMOS DE:", Lines: payerLines})

	ref := splitLines(rc.Description)
	if rc.Service != nil {
		ref = append(ref, fmt.Sprintf("Serviço: #%d - %s", rc.Service.ID, rc.Service.Title))
	}
	if rc.Financial != nil {
		ref = append(ref, fmt.Sprintf("Lançamento: #%d - %s", rc.Financial.ID, rc.Financial.Description))
	}
	doc.Sections = append(doc.Sections,
		section{Title: "REFERENTE A:", Lines: ref},
		section{Title: "PAGAMENTO", Lines: []string{
			"Valor: " + FormatBRL(rc.Amount),
			"Forma de Pagamento: " + orDash(deref(rc.PaymentMethod)),
		}},
	)
	return doc
}

func renderText(doc document) string {
	var b strings.Builder
	b.WriteString(doc.Title + "\n")
	if doc.Subtitle != "" {
		b.WriteString(doc.Subtitle + "\n")
	}
	b.WriteString("\n")
	for _, line := range doc.Header {
		b.WriteString(line + "\n")
	}
	for _, sec := range doc.Sections {
		b.WriteString("\n" + sec.Title + "\n")
		for _, line := range sec.Lines {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n" + doc.Footer + "\n")
	return b.String()
}

func renderPDF(doc document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate so Portuguese accents render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	content := width - left - right

	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(content, 9, tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(content, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, line := range doc.Header {
		pdf.CellFormat(content, 6, tr(line), "", 1, "L", false, 0, "")
	}

	for _, sec := range doc.Sections {
		pdf.Ln(3)
		pdf.SetFillColor(235, 240, 245)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(content, 7, tr(sec.Title), "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, line := range sec.Lines {
			pdf.MultiCell(content, 5.5, tr(line), "", "L", false)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(content, 5, tr(doc.Footer), "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatBRL renders an amount as Brazilian currency, e.g. R$ 1.234,56.
func FormatBRL(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	return sign + "R$ " + strings.Join(grouped, ".") + "," + frac
}

func measurement(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return strings.Replace(strconv.FormatFloat(*v, 'f', -1, 64), ".", ",", 1) + unit
}

func splitLines(s string) []string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return []string{"-"}
	}
	return strings.Split(s, "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
