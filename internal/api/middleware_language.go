package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware stores an explicit language choice from the cookie or
// Accept-Language. Without one, handlers fall back to the user's profile.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := ""
	if cookieLanguage := c.Cookies(languageCookieName); handler.i18n.IsSupported(cookieLanguage) {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	} else {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	if language != "" {
		c.Locals(contextLanguageKey, language)
	}
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
}
