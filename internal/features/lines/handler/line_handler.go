package handler

import (
	"errors"

	"dockboard/internal/features/lines/service"

	"github.com/gofiber/fiber/v2"
)

// LineHandler handles HTTP requests for purchase-order line search.
type LineHandler struct {
	searchService *service.SearchService
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(searchService *service.SearchService) *LineHandler {
	return &LineHandler{
		searchService: searchService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// SearchLines godoc
// @Summary Search purchase-order lines
// @Description Free-text lookup of purchase-order lines. Queries shorter than two characters are rejected; rapid successive queries supersede each other, last request wins.
// @Tags lines
// @Produce json
// @Param q query string true "Search text (minimum 2 characters)"
// @Success 200 {array} domain.LineResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /po/lines/search [get]
func (h *LineHandler) SearchLines(c *fiber.Ctx) error {
	results, err := h.searchService.Debounced(c.UserContext(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "query must be at least 2 characters",
				RayID:   rayID(c),
			})
		case errors.Is(err, service.ErrSuperseded):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Message: "superseded by a newer query",
				RayID:   rayID(c),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
	}

	return c.JSON(results)
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
