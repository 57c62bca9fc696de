package models

import "time"

// PendingCredential holds a freshly generated plaintext password until
// an admin reads it exactly once. At most one row per username; the
// one-time read deletes the row.
type PendingCredential struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Password  string    `json:"password" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
