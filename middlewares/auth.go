package middlewares

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"facturation-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
	tokenCookie  = "token"

	// Session lifetime. Eight hours covers the single-day selling
	// shift the seller-of-day accounts exist for.
	tokenTTL = 8 * time.Hour
)

// Claims carries the caller's identity so handlers can authorize
// without another user lookup (subject=userID plus username, role and
// display name).
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

var (
	secretOnce sync.Once
	jwtSecret  []byte
	secretErr  error
)

func loadJWTSecret() error {
	secretOnce.Do(func() {
		// Prefer JWT_SECRET_KEY, fallback to JWT_SECRET
		sec := os.Getenv("JWT_SECRET_KEY")
		if strings.TrimSpace(sec) == "" {
			sec = os.Getenv("JWT_SECRET")
		}
		if strings.TrimSpace(sec) == "" {
			secretErr = errors.New("JWT secret not configured (set JWT_SECRET_KEY or JWT_SECRET)")
			return
		}
		jwtSecret = []byte(sec)
	})
	return secretErr
}

// TokenTTL is the fixed session expiry, also used for the cookie.
func TokenTTL() time.Duration { return tokenTTL }

// GenerateJWT signs a new HS256 session token for the given user.
func GenerateJWT(user *models.User) (string, error) {
	if err := loadJWTSecret(); err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// IsAuthenticated validates the session token (cookie first, then
// Bearer header), enforces HS256, and stashes the identity in
// c.Locals("identity").
func IsAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := loadJWTSecret(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "server auth not configured",
			})
		}

		raw := c.Cookies(tokenCookie)
		if raw == "" {
			h := c.Get(authHeader)
			if strings.HasPrefix(strings.ToLower(h), strings.ToLower(bearerPrefix)) {
				raw = strings.TrimSpace(h[len(bearerPrefix):])
			}
		}
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing session token"})
		}

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		var claims Claims
		token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			// Parser already restricts to HS256; this is just defense-in-depth.
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		// Basic payload checks
		if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Role) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "token missing subject/role"})
		}

		c.Locals("identity", &claims)

		return c.Next()
	}
}

// Identity returns the authenticated caller's claims (nil on public routes).
func Identity(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals("identity").(*Claims)
	return claims
}

// RequireRole gates a route on the caller's role. Run after IsAuthenticated().
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity == nil || identity.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "access denied"})
		}
		return c.Next()
	}
}
