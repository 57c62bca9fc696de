package database

import (
	"fmt"
	"os"

	"facturation-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultInvoicePrefix = "EB"

// InvoicePrefix returns the configured invoice number prefix.
func InvoicePrefix() string {
	if p := os.Getenv("INVOICE_PREFIX"); p != "" {
		return p
	}
	return defaultInvoicePrefix
}

// NextInvoiceNumber allocates the next number for the given year,
// formatted PREFIX-YEAR-NNNNNN. It must run inside the transaction that
// inserts the invoice: the sequence row is upserted with an increment,
// so concurrent creators serialize on the row and numbers stay unique
// and monotonic.
func NextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	seq := models.InvoiceSequence{Year: year, Counter: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"counter": gorm.Expr("invoice_sequences.counter + 1"),
		}),
	}).Create(&seq).Error; err != nil {
		return "", err
	}
	if err := tx.First(&seq, "year = ?", year).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%06d", InvoicePrefix(), year, seq.Counter), nil
}
