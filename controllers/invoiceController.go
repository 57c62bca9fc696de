package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultCurrency = "CDF"

type invoiceLineInput struct {
	OrderIndex  int     `json:"order_index"`
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Amount      float64 `json:"amount"` // client value, ignored
}

type createInvoiceInput struct {
	ClientName string             `json:"client_name" validate:"required"`
	IssueDate  string             `json:"issue_date" validate:"required,datetime=2006-01-02"`
	IssueTime  string             `json:"issue_time"`
	SellerId   string             `json:"seller_id"`
	Currency   string             `json:"currency"`
	Total      float64            `json:"total"` // client value, ignored
	Lines      []invoiceLineInput `json:"lines" validate:"required,min=1,dive"`
}

// CreateInvoice persists an invoice and its ordered lines as one
// transaction. Line amounts and the total are recomputed server-side
// from quantity and unit price; the submitted values are not trusted.
func CreateInvoice(c *fiber.Ctx) error {
	var input createInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)
	for i := range input.Lines {
		utils.NormalizeDTO(&input.Lines[i])
	}

	issued, err := time.Parse("2006-01-02", input.IssueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid issue date")
	}

	identity := middlewares.Identity(c)
	sellerId := input.SellerId
	if sellerId == "" {
		sellerId = identity.Subject
	}
	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	lines := make([]models.InvoiceLine, 0, len(input.Lines))
	var total float64
	for i, l := range input.Lines {
		amount := utils.Round2(l.Quantity * l.UnitPrice)
		total += amount
		lines = append(lines, models.InvoiceLine{
			OrderIndex:  i + 1,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      amount,
		})
	}

	invoice := models.Invoice{
		ClientName: input.ClientName,
		IssueDate:  input.IssueDate,
		IssueTime:  input.IssueTime,
		SellerId:   sellerId,
		Lines:      lines,
		Total:      utils.Round2(total),
		Currency:   currency,
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	number, err := database.NextInvoiceNumber(tx, issued.Year())
	if err != nil {
		tx.Rollback()
		return err
	}
	invoice.InvoiceNumber = number

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return err
	}

	// Verification payload for the printed QR code.
	qr, _ := json.Marshal(fiber.Map{
		"id":     invoice.ID,
		"number": invoice.InvoiceNumber,
		"total":  invoice.Total,
	})
	if err := tx.Model(&invoice).Update("qr_data", datatypes.JSON(qr)).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":             invoice.ID,
		"invoice_number": invoice.InvoiceNumber,
	})
}

// GetInvoices lists all invoices, newest first. Admin only.
func GetInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice
	if err := database.DB.Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(invoices)
}

func GetInvoice(c *fiber.Ctx) error {
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
	return c.JSON(invoice)
}

// DeleteInvoice removes an invoice and all of its lines as one
// transaction. Admin only.
func DeleteInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLine{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	res := tx.Delete(&models.Invoice{}, id)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
