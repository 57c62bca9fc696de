package database

import (
	"log"

	"facturation-backend/models"
)

// AutoMigrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - unique index on invoice line ordering within an invoice
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.InvoiceSequence{},
		&models.PendingCredential{},
	); err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoice_lines_invoice_order ON invoice_lines (invoice_id, order_index)`,
	}
	for _, stmt := range indexes {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Fatalf("index migration failed on: %s - %v", stmt, err)
		}
	}
}
