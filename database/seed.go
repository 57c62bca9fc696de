package database

import (
	"errors"
	"time"

	"facturation-backend/models"
	"facturation-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sellerUsernamePrefix = "seller_"

// ErrInvalidCredentials covers unknown usernames and wrong passwords
// alike, so login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Hash of a throwaway string, compared against when the username does
// not exist so both failure paths cost one bcrypt comparison.
var dummyHash = []byte("$2a$12$K9oY1hEMerqNwsmzZOPHU.gLYXTmgbV9r.P9fBTUJJVHV9jqsM4IG")

// Seed provisions the first admin and the first daily seller when the
// user table is empty. Both passwords are random and reachable only
// through the pending-credential store.
func Seed() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword := utils.RandomPassword(6)
	admin := models.User{
		Username: "admin",
		Role:     models.RoleAdmin,
		FullName: "Administrator",
	}
	admin.SetPassword(adminPassword)
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	if err := Secrets.Put(admin.Username, adminPassword); err != nil {
		return err
	}

	_, err := RotateSeller(time.Now())
	return err
}

// RotateSeller derives the seller-of-day account (seller_YYYYMMDD) for
// the given date, resets its password to a fresh random one and stores
// the plaintext for one-time disclosure. A crash between the two writes
// leaves an account without a disclosable password; re-rotating repairs
// that.
func RotateSeller(now time.Time) (*models.User, error) {
	username := sellerUsernamePrefix + now.Format("20060102")
	plain := utils.RandomPassword(6)

	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		user.SetPassword(plain)
		if err := DB.Model(&user).Update("password", user.Password).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Username: username,
			Role:     models.RoleSeller,
			FullName: "Seller of the day",
		}
		user.SetPassword(plain)
		if err := DB.Create(&user).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := Secrets.Put(username, plain); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyUser checks a username/password pair against the stored hash.
func VerifyUser(username, password string) (*models.User, error) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := user.ComparePassword(password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
