package models

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice is an immutable sales record: created as one unit with its
// lines, never updated, deleted (admin only) as one unit.
type Invoice struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoice_number" gorm:"unique;not null"`
	ClientName    string `json:"client_name" gorm:"not null"`
	IssueDate     string `json:"issue_date" gorm:"not null"` // YYYY-MM-DD
	IssueTime     string `json:"issue_time"`                 // HH:MM, as submitted
	SellerId      string `json:"seller_id" gorm:"index"`

	Lines []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	Total    float64 `json:"total" gorm:"type:numeric(12,2)"`
	Currency string  `json:"currency" gorm:"type:VARCHAR(3)"`

	// Verification payload embedded in the printed QR code.
	QRData datatypes.JSON `json:"qr_data" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoiceLine struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index"`
	OrderIndex  int     `json:"order_index" gorm:"not null"` // 1-based, contiguous per invoice
	Description string  `json:"description" gorm:"not null"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"` // recomputed as quantity * unit_price
}

// InvoiceSequence backs atomic invoice numbering. One row per year,
// incremented inside the same transaction that inserts the invoice.
type InvoiceSequence struct {
	Year    int    `gorm:"primaryKey"`
	Counter uint64 `gorm:"not null;default:0"`
}
