package controllers

import (
	"errors"
	"os"
	"strings"
	"time"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := database.VerifyUser(strings.TrimSpace(data["username"]), data["password"])
	if err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			// One message for unknown user and wrong password.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "incorrect username or password",
			})
		}
		return err
	}

	token, err := middlewares.GenerateJWT(user)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(middlewares.TokenTTL()),
		HTTPOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":        user.Id,
			"username":  user.Username,
			"role":      user.Role,
			"full_name": user.FullName,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// Me returns the identity embedded in the session token.
func Me(c *fiber.Ctx) error {
	identity := middlewares.Identity(c)
	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":        identity.Subject,
			"username":  identity.Username,
			"role":      identity.Role,
			"full_name": identity.FullName,
		},
	})
}

// SellerOfDay is public: it surfaces the most recently rotated seller
// account by username and display name only, never a password.
func SellerOfDay(c *fiber.Ctx) error {
	var user models.User
	err := database.DB.
		Where("role = ? AND username LIKE ?", models.RoleSeller, "seller_%").
		Order("username DESC"). // usernames embed YYYYMMDD, so this is newest-first
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// fallback: any seller
		err = database.DB.
			Where("role = ?", models.RoleSeller).
			Order("created_at DESC").
			First(&user).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"username":  user.Username,
		"full_name": user.FullName,
	})
}
