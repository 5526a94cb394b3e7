package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/course"
	"github.com/edwebhq/edweb/core/user"
)

type courseApi struct {
	svc    *course.Service
	usrSvc *user.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, usrSvc *user.Service) {
	api := courseApi{svc: svc, usrSvc: usrSvc}

	cg := g.Group("/courses")

	// the catalog is public
	cg.GET("", api.query)

	// authed endpoints
	ag := cg.Group("", jwt)
	ag.POST("", api.create, roleMiddleware(user.RoleInstructor))
	ag.GET("/my-courses", api.myCourses)
	ag.GET("/my-learners", api.myLearners, roleMiddleware(user.RoleInstructor))
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id/status", api.updateStatus, roleMiddleware(user.RoleInstructor))
	ag.POST("/:id/enroll", api.enroll, roleMiddleware(user.RoleLearner))
	ag.POST("/:id/progress", api.progress, roleMiddleware(user.RoleLearner))
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	crs, err := api.svc.Create(claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAllWithInstructor()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetWithInstructorAndStudents(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) myCourses(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	courses, err := api.svc.CoursesFor(usr)
	if err != nil {
		return errors.Wrap(err, "querying user courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) myLearners(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	roster, err := api.svc.LearnerRoster(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying learner roster")
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *courseApi) updateStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if err := api.checkOwnership(ctx, crs); err != nil {
		return err
	}

	crs, err = api.svc.UpdateStatus(crs.ID, data.Status)
	if err != nil {
		return errors.Wrap(err, "updating course status")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Enroll(ctx.Param("id"), usr); err != nil {
		return errors.Wrap(err, "enrolling")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Enrolled successfully."})
}

func (api *courseApi) progress(ctx echo.Context) error {
	var data ProgressRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	entry, err := api.svc.SetContentCompletion(claims.Subject, ctx.Param("id"), data.ContentID, data.Completed)
	if err != nil {
		return errors.Wrap(err, "updating course progress")
	}
	return ctx.JSON(http.StatusOK, entry)
}

// checkOwnership rejects mutations on a course not owned by the caller.
// Admins bypass the check.
func (api *courseApi) checkOwnership(ctx echo.Context, crs course.Course) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.Role != user.RoleAdmin && crs.Instructor != claims.Subject {
		return errHTTPForbidden
	}
	return nil
}

type (
	StatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	ProgressRequest struct {
		ContentID string `json:"contentId" validate:"required"`
		Completed bool   `json:"completed"`
	}
)

func (sr *StatusRequest) Validate() error {
	sr.Status = core.CleanString(sr.Status)
	return core.Validate.Struct(sr)
}

func (pr *ProgressRequest) Validate() error {
	return core.Validate.Struct(pr)
}
