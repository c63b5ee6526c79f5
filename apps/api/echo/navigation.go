package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/navigation"
)

type (
	NavigationQuery struct {
		Search   string `query:"search" validate:"max=100"`
		Location string `query:"location" validate:"omitempty,abspath"`
	}

	ExpandedResponse struct {
		Expanded []string `json:"expanded"`
	}
)

func (q *NavigationQuery) Validate(validate *validator.Validate) error {
	q.Location = core.CleanString(q.Location)
	return validate.Struct(q)
}

type navigationApi struct {
	svc      *navigation.Service
	validate *validator.Validate
}

func registerNavigationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *navigation.Service, validate *validator.Validate) {
	api := navigationApi{svc: svc, validate: validate}

	ng := g.Group("/navigation", jwt, tenantMiddleware())
	ng.GET("", api.menu)
	ng.GET("/expanded", api.expanded)
	ng.POST("/expanded/:id/toggle", api.toggle)
}

// Handlers

func (api *navigationApi) menu(ctx echo.Context) error {
	var query NavigationQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to NavigationQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Menu(ctx.Request().Context(), sess, query.Search, query.Location))
}

func (api *navigationApi) expanded(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	ids, err := api.svc.Expanded(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading expanded nodes")
	}
	return ctx.JSON(http.StatusOK, ExpandedResponse{Expanded: ids})
}

func (api *navigationApi) toggle(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	ids, err := api.svc.Toggle(ctx.Request().Context(), sess, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == navigation.ErrNodeNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "toggling node")
	}
	return ctx.JSON(http.StatusOK, ExpandedResponse{Expanded: ids})
}
