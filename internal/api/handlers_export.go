package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	exportFormatCSV  = "csv"
	exportFormatJSON = "json"
)

// ExportMeals streams the meal log for ?from=&to= as an attachment.
// ?format=json adds daily water totals.
func (handler *Handler) ExportMeals(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	format := strings.ToLower(strings.TrimSpace(c.Query("format", exportFormatCSV)))
	if format != exportFormatCSV && format != exportFormatJSON {
		return apiError(c, fiber.StatusBadRequest, "unsupported export format")
	}

	now := handler.now().In(handler.location)
	rng, err := handler.exportService.ParseRange(c.Query("from"), c.Query("to"), now)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	entries, err := handler.exportService.BuildMealEntries(user.ID, rng)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch meals")
	}

	if format == exportFormatJSON {
		water, err := handler.exportService.BuildWaterDays(user.ID, rng)
		if err != nil {
			return handler.respondServiceError(c, err, "failed to fetch water")
		}
		serialized, err := json.MarshalIndent(fiber.Map{
			"exported_at": now.Format(time.RFC3339),
			"from":        services.FormatDay(rng.From),
			"to":          services.FormatDay(rng.To),
			"meals":       entries,
			"water":       water,
		}, "", "  ")
		if err != nil {
			return handler.internalError(c, err, "failed to build export")
		}
		setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, exportFormatJSON))
		return c.Send(serialized)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.internalError(c, err, "failed to build export")
	}
	for _, entry := range entries {
		if err := writer.Write(entry.Columns()); err != nil {
			return handler.internalError(c, err, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.internalError(c, err, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(now, exportFormatCSV))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	rng, err := handler.exportService.ParseRange(c.Query("from"), c.Query("to"), handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build export")
	}

	summary, err := handler.exportService.BuildSummary(user.ID, rng)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch meals")
	}
	return c.JSON(summary)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("vitalmente-meals-%s.%s", now.Format("2006-01-02"), extension)
}
