package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edwebhq/edweb/core"
	"github.com/edwebhq/edweb/core/quiz"
	"github.com/edwebhq/edweb/core/user"
)

type userApi struct {
	svc     *user.Service
	quizSvc *quiz.Service
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service, quizSvc *quiz.Service) {
	api := userApi{svc: svc, quizSvc: quizSvc}

	// un-authed endpoints
	ag := g.Group("/auth")
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)

	// authed endpoints
	ag.GET("/token-refresh", api.refreshToken, jwt)

	ug := g.Group("/users", jwt)
	ug.GET("/me/results", api.myResults)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, newAuthResponse(usr, token))
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := authenticate(data.Email, data.Password, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, newAuthResponse(usr, token))
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *userApi) myResults(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	results, err := api.quizSvc.ResultsFor(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying results")
	}
	if results == nil {
		results = []quiz.Result{}
	}
	return ctx.JSON(http.StatusOK, results)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	AuthResponse struct {
		ID          string `json:"_id"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		AccessToken string `json:"access_token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

func newAuthResponse(usr user.User, token string) AuthResponse {
	return AuthResponse{
		ID:          usr.ID,
		Name:        usr.Name,
		Email:       usr.Email,
		Role:        usr.Role,
		AccessToken: token,
	}
}
