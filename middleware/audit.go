package middleware

import (
	"time"

	"gate-dashboard/logger"
	"gate-dashboard/types"

	"github.com/gofiber/fiber/v2"
)

// RequestAudit records every mutating request/response pair through the
// async logger. Read-only requests are skipped to keep the audit table from
// filling up with polling traffic.
func RequestAudit(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == fiber.MethodGet {
			return err
		}

		asyncLogger.Log(types.LogEntry{
			Method:          c.Method(),
			URL:             c.OriginalURL(),
			ClientIP:        c.IP(),
			RequestBody:     string(c.Body()),
			RequestHeaders:  c.Request().Header.String(),
			ResponseBody:    string(c.Response().Body()),
			ResponseHeaders: c.Response().Header.String(),
			StatusCode:      c.Response().StatusCode(),
			CreatedAt:       time.Now(),
		})
		return err
	}
}
