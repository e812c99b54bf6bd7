package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
)

// RequestLogger registra cada petición (método, ruta, estado, latencia, request id) y la
// observa en las métricas HTTP. Va después de requestid.New().
func RequestLogger(log *logger.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el estado antes de leerlo.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.Observe(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		reqID, _ := c.Locals("requestid").(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", reqID).
			Str("ip", c.IP()).
			Msg("petición")
		return nil
	}
}
