package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/core/user"
)

var errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, user.ErrInvalidCredentials.Error())

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// LoginResponse carries the user and the page their role lands on.
	LoginResponse struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		Role        string `json:"role"`
		Destination string `json:"destination"`
	}
)

type authApi struct {
	users *user.Directory
	val   *school.Validator
}

func registerAuthAPI(e *echo.Echo, users *user.Directory, val *school.Validator) {
	if users == nil {
		return
	}
	api := authApi{users: users, val: val}
	e.POST("/auth/login", api.login)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if api.val != nil {
		if err := api.val.Struct(data); err != nil {
			return err
		}
	}

	usr, dest, err := api.users.Login(data.Email, data.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "authenticating")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Email: usr.Email, Name: usr.Name, Role: usr.Role, Destination: dest})
}
