package handler

import (
	"errors"

	"dockboard/internal/features/trucks/domain"
	"dockboard/internal/features/trucks/service"
	"dockboard/internal/features/trucks/store"

	"github.com/gofiber/fiber/v2"
)

// TruckHandler handles HTTP requests for incoming trucks.
type TruckHandler struct {
	store       *store.Store
	refresher   *service.Refresher
	coordinator *service.Coordinator
}

// NewTruckHandler creates a new TruckHandler.
func NewTruckHandler(s *store.Store, refresher *service.Refresher, coordinator *service.Coordinator) *TruckHandler {
	return &TruckHandler{
		store:       s,
		refresher:   refresher,
		coordinator: coordinator,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListResponse wraps the truck collection with the refresh error state, so a
// dashboard can keep rendering the last snapshot while flagging staleness.
type ListResponse struct {
	// Trucks is the current collection.
	Trucks []*domain.Truck `json:"trucks"`
	// Stale is true when the most recent refresh failed.
	Stale bool `json:"stale"`
	// Error describes the refresh failure when Stale is true.
	Error string `json:"error,omitempty"`
}

// ListTrucks godoc
// @Summary List incoming trucks
// @Description Returns the current truck collection with derived update summaries. A failed remote refresh is reported via the stale flag while the last good snapshot keeps serving.
// @Tags trucks
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 502 {object} ErrorResponse
// @Router /incoming-trucks [get]
func (h *TruckHandler) ListTrucks(c *fiber.Ctx) error {
	snapshot := h.store.Snapshot()
	if len(snapshot) == 0 {
		if err := h.refresher.Refresh(c.UserContext()); err != nil && len(h.store.Snapshot()) == 0 {
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
		snapshot = h.store.Snapshot()
	}

	response := ListResponse{Trucks: snapshot}
	if err := h.refresher.LastError(); err != nil {
		response.Stale = true
		response.Error = err.Error()
	}
	return c.JSON(response)
}

// SubmitUpdate godoc
// @Summary Submit a truck update
// @Description Applies the update optimistically, forwards it to the retail-ops API and reconciles the local history with the confirmed event.
// @Tags trucks
// @Accept json
// @Produce json
// @Param id path int true "Truck ID"
// @Param update body domain.UpdateDraft true "Update payload"
// @Success 200 {object} domain.TruckUpdate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /incoming-trucks/{id}/updates [post]
func (h *TruckHandler) SubmitUpdate(c *fiber.Ctx) error {
	truckID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "truck id must be an integer",
			RayID:   rayID(c),
		})
	}

	var draft domain.UpdateDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid update payload",
			RayID:   rayID(c),
		})
	}

	confirmed, err := h.coordinator.Submit(c.UserContext(), int64(truckID), draft)
	if err != nil {
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, service.ErrTruckNotFound):
			status = fiber.StatusNotFound
		case isValidationError(err):
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(confirmed)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidKind) ||
		errors.Is(err, domain.ErrStatusRequired) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrLineRequired) ||
		errors.Is(err, domain.ErrQuantityRequired)
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
