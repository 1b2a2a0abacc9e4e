package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/maizepoint-api/pkg/logger"
)

// HTTPObserver recibe cada petición atendida (lo implementa metrics.Collector).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, estado y latencia de cada petición. observer puede ser nil.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el estado
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http")

		if observer != nil {
			observer.ObserveHTTP(c.Method(), c.Route().Path, status, elapsed)
		}
		return nil
	}
}
