package api

import (
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName     = "vitalmente_auth"
	languageCookieName = "vitalmente_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextPremiumKey  = "current_premium"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// currentLanguage prefers an explicit cookie or header choice, then the
// user's saved language, then the default.
func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	if user, ok := currentUser(c); ok && user.Language != "" {
		return handler.i18n.NormalizeLanguage(user.Language)
	}
	return handler.i18n.DefaultLanguage()
}

func hasPremium(c *fiber.Ctx) bool {
	premium, _ := c.Locals(contextPremiumKey).(bool)
	return premium
}
