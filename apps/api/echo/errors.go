package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// detailItem is one entry of a validation error list.
type detailItem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that renders errors as `{"detail": ...}`.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code   int
			detail interface{}
			herr   *echo.HTTPError
			verr   *core.ValidationError
		)

		switch {
		case errors.As(err, &herr):
			if herr.Internal != nil {
				if inner, ok := herr.Internal.(*echo.HTTPError); ok {
					herr = inner
				}
			}
			code = herr.Code
			detail = herr.Message
		case errors.As(err, &verr):
			code = http.StatusUnprocessableEntity
			if len(verr.Fields) == 0 {
				detail = verr.Error()
				break
			}
			items := make([]detailItem, 0, len(verr.Fields))
			for _, fe := range verr.Fields {
				items = append(items, detailItem{Loc: []string{"body", fe.Field}, Msg: fe.Error, Type: "value_error"})
			}
			detail = items
		case errors.Is(err, school.ErrNotFound):
			code = errHttpNotFound.Code
			detail = errHttpNotFound.Message
		case errors.Is(err, school.ErrIDExists):
			code = http.StatusConflict
			detail = school.ErrIDExists.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			detail = msg
			logger.Error(msg, errors.Wrap(err, msg))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			detail = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"detail": detail})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
