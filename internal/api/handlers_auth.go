package api

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type sessionResponse struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(input.Email, input.Password, handler.currentLanguage(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create account")
	}
	return handler.startSession(c, &user, input.RememberMe, fiber.StatusCreated)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if wait := handler.loginLimiter.blockedFor(limiterKey, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthInvalidLogin) {
			handler.loginLimiter.recordFailure(limiterKey, now)
		}
		return handler.respondServiceError(c, err, "failed to sign in")
	}
	handler.loginLimiter.clear(limiterKey)
	return handler.startSession(c, &user, input.RememberMe, fiber.StatusOK)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.ChangePassword(*user, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		return handler.respondServiceError(c, err, "failed to update password")
	}

	user.MustChangePassword = false
	return handler.startSession(c, user, false, fiber.StatusOK)
}

func (handler *Handler) startSession(c *fiber.Ctx, user *models.User, rememberMe bool, status int) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}
	token, err := handler.buildToken(user, ttl)
	if err != nil {
		return handler.internalError(c, err, "failed to create session")
	}
	handler.setAuthCookie(c, token, ttl, rememberMe)
	if strings.TrimSpace(user.Language) != "" {
		handler.setLanguageCookie(c, user.Language)
	}

	return c.Status(status).JSON(sessionResponse{
		User:      *user,
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	})
}
