package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edwebhq/edweb/core/course"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
)

type quizApi struct {
	svc       *quiz.Service
	courseSvc *course.Service
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *quiz.Service, courseSvc *course.Service) {
	api := quizApi{svc: svc, courseSvc: courseSvc}

	qg := g.Group("/quizzes", jwt)
	qg.POST("", api.create, roleMiddleware(user.RoleInstructor))
	qg.GET("/course/:courseId", api.queryByCourse)
	qg.GET("/results/course/:courseId", api.courseResults, roleMiddleware(user.RoleInstructor))
	qg.GET("/:id", api.retrieve)
	qg.POST("/:id/submit", api.submit, roleMiddleware(user.RoleLearner))
}

// Handlers

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.courseSvc.GetByID(data.CourseID)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if err := api.checkOwnership(ctx, crs); err != nil {
		return err
	}

	q, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizApi) queryByCourse(ctx echo.Context) error {
	quizzes, err := api.svc.QueryByCourse(ctx.Param("courseId"))
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	q, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == quiz.ErrNotFound {
			return errHTTPNotFound
		}
		return errors.Wrap(err, "finding quiz by ID")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizApi) submit(ctx echo.Context) error {
	var data quiz.Submission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	result, err := api.svc.Submit(claims.Subject, ctx.Param("id"), data.Answers)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusCreated, result)
}

func (api *quizApi) courseResults(ctx echo.Context) error {
	crs, err := api.courseSvc.GetByID(ctx.Param("courseId"))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	if err := api.checkOwnership(ctx, crs); err != nil {
		return err
	}

	results, err := api.svc.ResultsByCourse(crs.ID)
	if err != nil {
		return errors.Wrap(err, "querying course results")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *quizApi) checkOwnership(ctx echo.Context, crs course.Course) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.Role != user.RoleAdmin && crs.Instructor != claims.Subject {
		return errHTTPForbidden
	}
	return nil
}
