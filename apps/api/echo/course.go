package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/announcement"
	"github.com/qemer/lms/core/course"
	"github.com/qemer/lms/core/user"
)

type courseApi struct {
	svc      *course.Service
	usrSvc   *user.Service
	annSvc   *announcement.Service
	validate *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	svc *course.Service,
	usrSvc *user.Service,
	annSvc *announcement.Service,
	validate *validator.Validate,
) {
	api := courseApi{svc: svc, usrSvc: usrSvc, annSvc: annSvc, validate: validate}

	g.GET("/courses", api.query)
	g.GET("/courses/:id", api.retrieve)
	g.GET("/categories", api.categories)
	g.GET("/announcements", api.announcements)
	g.GET("/dashboard", api.dashboard)
	g.POST("/enroll", api.enroll)
	g.POST("/assignments/:id/submit", api.submitAssignment)
}

type dashboardResponse struct {
	course.Dashboard
	Announcements []announcement.Announcement `json:"announcements"`
}

func (api *courseApi) query(ctx echo.Context) error {
	filter := course.QueryFilter{
		Search:   ctx.QueryParam("search"),
		Category: ctx.QueryParam("category"),
		Level:    ctx.QueryParam("level"),
		SortBy:   ctx.QueryParam("sortBy"),
		Pagination: core.Pagination{
			Page:  intQueryParam(ctx, "page"),
			Limit: intQueryParam(ctx, "limit"),
		},
	}
	filter.Clean()

	list, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, list)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	detail, err := api.svc.GetByID(ctx.Param("id"), ctx.QueryParam("userId"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *courseApi) categories(ctx echo.Context) error {
	cats, err := api.svc.Categories()
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *courseApi) announcements(ctx echo.Context) error {
	anns, err := api.annSvc.Active()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *courseApi) dashboard(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("userId"))
	if userID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "userId", Error: "this field is required"})
	}

	dash, err := api.svc.Dashboard(userID)
	if err != nil {
		return err
	}
	anns, err := api.annSvc.ForStudent(3)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dashboardResponse{Dashboard: dash, Announcements: anns})
}

func (api *courseApi) enroll(ctx echo.Context) error {
	data := new(course.NewEnrollment)
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.usrSvc.GetByID(data.UserID)
	if err != nil {
		return err
	}

	enr, err := api.svc.Enroll(*data, mail.Address{Name: usr.Name, Address: usr.Email})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *courseApi) submitAssignment(ctx echo.Context) error {
	data := new(course.NewSubmission)
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.SubmitAssignment(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}
