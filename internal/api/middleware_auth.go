package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)

	if user.MustChangePassword && !allowedDuringPasswordChange(c.Path()) {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

// allowedDuringPasswordChange follows Fiber's default routing, which ignores
// case and a trailing slash.
func allowedDuringPasswordChange(path string) bool {
	path = strings.TrimRight(path, "/")
	return strings.EqualFold(path, "/api/profile/password") || strings.EqualFold(path, "/api/auth/logout")
}

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if user.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}

// LoadPremium records whether the current user has premium access without
// blocking the request.
func (handler *Handler) LoadPremium(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	premium, err := handler.subscriptionService.HasPremium(user.ID)
	if err != nil {
		return handler.internalError(c, err, "failed to load subscription")
	}
	c.Locals(contextPremiumKey, premium)
	return c.Next()
}

func (handler *Handler) PremiumOnly(c *fiber.Ctx) error {
	if !hasPremium(c) {
		return apiError(c, fiber.StatusPaymentRequired, "premium subscription required")
	}
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue := bearerToken(c.Get(fiber.HeaderAuthorization))
	if tokenValue == "" {
		tokenValue = strings.TrimSpace(c.Cookies(authCookieName))
	}
	if tokenValue == "" {
		return nil, errors.New("missing auth token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(header string) string {
	scheme, value, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}
