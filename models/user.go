package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

type User struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"unique;not null"`
	Password []byte `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"type:VARCHAR(20);not null"`
	FullName string `json:"full_name" gorm:"not null"`

	CreatedAt time.Time `json:"-"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
