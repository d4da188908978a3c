package api

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// RequestMetrics logs each request and records it under its route pattern.
func (handler *Handler) RequestMetrics(c *fiber.Ctx) error {
	started := time.Now()
	metrics.IncInFlight()
	defer metrics.DecInFlight()

	err := c.Next()
	if err != nil {
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	duration := time.Since(started)
	metrics.ObserveHTTPRequest(utils.CopyString(c.Method()), routePattern(c), status, duration)

	entry := handler.logger.WithFields(requestFields(c)).WithFields(logrus.Fields{
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	})
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("request failed")
	case status >= fiber.StatusBadRequest:
		entry.Info("request rejected")
	default:
		entry.Debug("request handled")
	}
	return nil
}

// Label values outlive the request, so they must not alias fasthttp buffers.
func routePattern(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
		return utils.CopyString(route.Path)
	}
	return "unmatched"
}

func requestFields(c *fiber.Ctx) logrus.Fields {
	fields := logrus.Fields{
		"method": utils.CopyString(c.Method()),
		"path":   utils.CopyString(c.Path()),
		"ip":     utils.CopyString(c.IP()),
	}
	if user, ok := currentUser(c); ok {
		fields["user_id"] = user.ID
	}
	return fields
}
