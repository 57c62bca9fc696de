package controllers

import (
	"errors"
	"time"

	"facturation-backend/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SellerCredentials disclose the most recently rotated seller password
// exactly once: the entry is deleted in the same transaction that reads
// it, so a second call returns 404 until the next rotation.
func SellerCredentials(c *fiber.Ctx) error {
	cred, err := database.Secrets.TakeLatest()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no pending credentials")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"username": cred.Username,
		"password": cred.Password,
	})
}

// RotateSeller provisions (or resets) the seller-of-day account and
// stages its new password for one-time disclosure.
func RotateSeller(c *fiber.Ctx) error {
	user, err := database.RotateSeller(time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"username":  user.Username,
		"full_name": user.FullName,
	})
}
