package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core/session"
)

// tenantMiddleware only lets school sessions with a known role through.
func tenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := getContextSession(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context session")
			}
			if sess.Tenant.IsZero() || !session.IsKnownRole(sess.Role) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// RequestObserver records served requests (see services/metrics).
type RequestObserver interface {
	ObserveRequest(method, route string, code int, elapsed time.Duration)
}

func metricsMiddleware(obs RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			obs.ObserveRequest(ctx.Request().Method, ctx.Path(), ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
