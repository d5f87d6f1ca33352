package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-contrib/requestid"
	"go.uber.org/zap"
)

// Err is the JSON body of every error response.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"status"`
	ErrorMsg       string `json:"error"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(
			"internal error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorMsg:       err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		ErrorMsg:       err.Error(),
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		Err:            errors.New("not found"),
		HTTPStatusCode: http.StatusNotFound,
		ErrorMsg:       fmt.Sprintf("%v with %v %v not found", resource, key, value),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		ErrorMsg:       "wrong username or password",
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		ErrorMsg:       "unauthorized",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorMsg:       "internal server error",
	}
}

// ErrResourceNotFound is ErrNotFound for callers that only hold the
// repository error.
func ErrResourceNotFound(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		ErrorMsg:       err.Error(),
	}
}
