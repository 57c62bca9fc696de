package database

import (
	"time"

	"facturation-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SecretStore holds plaintext passwords for exactly one authorized
// disclosure. The GORM-backed default can be swapped for another
// backend (flat file, managed secret manager) without touching callers.
type SecretStore interface {
	Put(username, password string) error
	TakeLatest() (*models.PendingCredential, error)
}

var Secrets SecretStore = gormSecretStore{}

type gormSecretStore struct{}

// Put stores the pending plaintext for a username, replacing any
// earlier undisclosed one.
func (gormSecretStore) Put(username, password string) error {
	cred := models.PendingCredential{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
	return DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password":   cred.Password,
			"created_at": cred.CreatedAt,
		}),
	}).Create(&cred).Error
}

// TakeLatest returns the most recently created pending credential and
// deletes it in the same transaction, so the same plaintext can never
// be returned twice. Returns gorm.ErrRecordNotFound when nothing is
// pending.
func (gormSecretStore) TakeLatest() (*models.PendingCredential, error) {
	var cred models.PendingCredential
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at DESC, id DESC").First(&cred).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PendingCredential{}, cred.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &cred, nil
}
