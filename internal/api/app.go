package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const maxRequestBodyBytes = 1 << 20

// NewApp builds the Fiber application with the shared middleware stack and
// every route registered.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "VitalMente",
		DisableStartupMessage: true,
		BodyLimit:             maxRequestBodyBytes,
		ErrorHandler:          handler.errorHandler,
	})

	app.Use(recover.New())
	app.Use(handler.RequestMetrics)
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		handler.logger.WithFields(requestFields(c)).WithError(err).Error("unhandled request error")
	}
	return apiError(c, status, message)
}
