package v1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/domain"
	"github.com/vietanh2810/bingo-api/internal/service"
)

var (
	notFoundErrs = []error{
		service.ErrSessionNotFound,
		service.ErrPlayerNotFound,
		service.ErrPatternNotFound,
	}
	conflictErrs = []error{
		domain.ErrSessionNotActive,
		domain.ErrSessionNotPaused,
		domain.ErrSessionFinished,
		domain.ErrSessionNotFinished,
		domain.ErrPoolExhausted,
		service.ErrPatternExists,
	}
	badRequestErrs = []error{
		domain.ErrInvalidToken,
		domain.ErrInvalidPattern,
		domain.ErrInvalidCard,
		domain.ErrUnknownModality,
		domain.ErrInvalidClaim,
		domain.ErrPlayerNotInSession,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// renderGameErr maps engine errors to HTTP statuses. op names the failing
// call for the 5xx log line.
func renderGameErr(ctx *gin.Context, op string, err error) {
	switch {
	case isAny(err, notFoundErrs):
		response.RenderErr(ctx, response.ErrResourceNotFound(userFacing(err)))
	case isAny(err, conflictErrs):
		response.RenderErr(ctx, response.ErrConflict(userFacing(err)))
	case isAny(err, badRequestErrs):
		response.RenderErr(ctx, response.ErrBadRequest(userFacing(err)))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

// userFacing drops the service call chain ("s.repo.X -> ...") but keeps any
// detail the domain attached to the sentinel.
func userFacing(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if !strings.Contains(e.Error(), " -> ") {
			return e
		}
	}

	return err
}
