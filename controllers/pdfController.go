package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

func brandName() string {
	if v := os.Getenv("BRAND_NAME"); v != "" {
		return v
	}
	return "Eraste Business SARL"
}

func brandAddress() string {
	if v := os.Getenv("BRAND_ADDRESS"); v != "" {
		return v
	}
	return "Marché MITENDI, RDC"
}

// InvoicePDF renders a printable invoice with an embedded verification
// QR code. Default is a 72 mm ticket; ?format=a4 renders a full page.
func InvoicePDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var invoice models.Invoice
	err = database.DB.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	if err != nil {
		return err
	}

	qr, err := qrcode.Encode(string(qrPayload(&invoice)), qrcode.Medium, 256)
	if err != nil {
		return err
	}

	sellerName := ""
	if identity := middlewares.Identity(c); identity != nil {
		sellerName = identity.FullName
	}

	var buf bytes.Buffer
	if strings.ToLower(c.Query("format")) == "a4" {
		err = renderA4(&buf, &invoice, sellerName, qr)
	} else {
		err = renderTicket(&buf, &invoice, sellerName, qr)
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", invoice.InvoiceNumber+".pdf"))
	return c.Send(buf.Bytes())
}

// qrPayload prefers the snapshot persisted at creation time so a
// reprinted ticket verifies against the original data.
func qrPayload(invoice *models.Invoice) []byte {
	if len(invoice.QRData) > 0 {
		return invoice.QRData
	}
	b, _ := json.Marshal(fiber.Map{
		"id":     invoice.ID,
		"number": invoice.InvoiceNumber,
		"total":  invoice.Total,
	})
	return b
}

// renderTicket lays out a 72 mm wide receipt, sized to the line count.
func renderTicket(w *bytes.Buffer, invoice *models.Invoice, sellerName string, qr []byte) error {
	height := 110.0 + float64(len(invoice.Lines))*10
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 72, Ht: height},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 5, tr(brandName()), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 4, tr(brandAddress()), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(0, 4, tr("Invoice "+invoice.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 4, tr(invoice.IssueDate+" "+invoice.IssueTime), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, tr("Client: "+invoice.ClientName), "", 1, "C", false, 0, "")
	if sellerName != "" {
		pdf.CellFormat(0, 4, tr("Seller: "+sellerName), "", 1, "C", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range invoice.Lines {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("%d. %s", l.OrderIndex, l.Description)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(0, 4, fmt.Sprintf("%.2f x %.2f = %.2f %s", l.Quantity, l.UnitPrice, l.Amount, invoice.Currency), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("TOTAL: %.2f %s", invoice.Total, invoice.Currency), "T", 1, "C", false, 0, "")

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	qrSize := 24.0
	pdf.ImageOptions("qr", (72-qrSize)/2, pdf.GetY()+2, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 3)
	pdf.SetFont("Helvetica", "", 6)
	pdf.CellFormat(0, 3, tr("Verification code"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// renderA4 lays out a full-page invoice with a line-item table.
func renderA4(w *bytes.Buffer, invoice *models.Invoice, sellerName string, qr []byte) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(brandName()), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(brandAddress()), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("SALES INVOICE"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Invoice no: "+invoice.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Issued: "+invoice.IssueDate+" "+invoice.IssueTime), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Client: "+invoice.ClientName), "", 1, "L", false, 0, "")
	if sellerName != "" {
		pdf.CellFormat(0, 6, tr("Seller: "+sellerName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 8, tr("No"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(98, 8, tr("Description"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, tr("Qty"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, tr("Unit price"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, tr("Amount"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range invoice.Lines {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", l.OrderIndex), "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 8, tr(l.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%.2f", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", l.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(160, 10, tr("TOTAL"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f %s", invoice.Total, invoice.Currency), "1", 1, "R", false, 0, "")

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	qrSize := 30.0
	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("qr", pageW-qrSize-15, pageH-qrSize-20, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetXY(pageW-qrSize-15, pageH-18)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(qrSize, 4, tr("Scan to verify"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
