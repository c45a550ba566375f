package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/warrantyguard/internal/logging"
)

const loggerKey = "logger"

// requestIDMiddleware keeps an incoming X-Request-ID or assigns a new one,
// echoes it in the response and stores a request-scoped logger.
func requestIDMiddleware(base logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(echo.HeaderXRequestID, requestID)
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			c.Set(loggerKey, base.With("request_id", requestID))

			return next(c)
		}
	}
}

// requestLoggerMiddleware logs one line per request once the response is
// written.
func requestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		req := c.Request()
		loggerFrom(c).Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"latency", time.Since(start),
		)
		return nil
	}
}

func loggerFrom(c echo.Context) logging.Logger {
	if l, ok := c.Get(loggerKey).(logging.Logger); ok {
		return l
	}
	return logging.Nop()
}
