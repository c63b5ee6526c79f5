package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-console/core/dashboard"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}

	dg := g.Group("/dashboard", jwt, tenantMiddleware())
	dg.GET("/quick-actions", api.quickActions)
}

func (api *dashboardApi) quickActions(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QuickActions(ctx.Request().Context(), sess))
}
