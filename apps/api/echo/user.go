package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
)

type adminApi struct {
	usrSvc *user.Service
	crsSvc *course.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, usrSvc *user.Service, crsSvc *course.Service) {
	api := adminApi{usrSvc: usrSvc, crsSvc: crsSvc}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/users", api.queryUsers)
	ag.GET("/stats", api.stats)
}

type adminStatsResponse struct {
	TotalUsers int `json:"totalUsers"`
	course.Stats
}

func (api *adminApi) queryUsers(ctx echo.Context) error {
	filter := user.QueryFilter{
		Search: ctx.QueryParam("search"),
		Role:   ctx.QueryParam("role"),
		Pagination: core.Pagination{
			Page:  intQueryParam(ctx, "page"),
			Limit: intQueryParam(ctx, "limit"),
		},
	}
	filter.Clean()

	list, err := api.usrSvc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *adminApi) stats(ctx echo.Context) error {
	stats, err := api.crsSvc.Stats()
	if err != nil {
		return err
	}
	totalUsers, err := api.usrSvc.Count()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, adminStatsResponse{TotalUsers: totalUsers, Stats: stats})
}
