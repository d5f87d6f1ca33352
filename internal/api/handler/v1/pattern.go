package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/bingo-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/bingo-api/internal/domain"
)

type PatternService interface {
	List(ctx context.Context) ([]domain.GamePattern, error)
	Create(ctx context.Context, name, description string, rows [][]bool) (domain.GamePattern, error)
}

type PatternHandler struct {
	svc PatternService
}

func NewPatternHandler(svc PatternService) *PatternHandler {
	return &PatternHandler{
		svc: svc,
	}
}

// HandleListPatterns godoc
// @Summary      List winning patterns
// @Tags         patterns
// @Produce      json
// @Success      200  {array}   domain.GamePattern
// @Failure      500  {object}  response.Err
// @Router       /patterns [get]
func (h *PatternHandler) HandleListPatterns(ctx *gin.Context) {
	patterns, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		renderGameErr(ctx, "HandleListPatterns -> h.svc.List", err)
		return
	}

	ctx.JSON(http.StatusOK, patterns)
}

// HandleCreatePattern godoc
// @Summary      Save a custom winning pattern
// @Tags         patterns
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePatternRequest  true  "pattern"
// @Success      201      {object}  domain.GamePattern
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /patterns [post]
// @Security     BearerAuth
func (h *PatternHandler) HandleCreatePattern(ctx *gin.Context) {
	var req request.CreatePatternRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pattern, err := h.svc.Create(ctx.Request.Context(), req.Name, req.Description, req.Grid)
	if err != nil {
		renderGameErr(ctx, "HandleCreatePattern -> h.svc.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, pattern)
}
