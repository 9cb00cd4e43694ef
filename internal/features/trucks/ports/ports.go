package ports

import (
	"context"

	"dockboard/internal/features/trucks/domain"
)

// RemoteSource defines the interface to the retail-ops API for trucks.
// This is a Secondary Port (Driven Port); the HTTP adapter implements it.
type RemoteSource interface {
	// ListTrucks retrieves all incoming trucks with their full histories.
	ListTrucks(ctx context.Context) ([]*domain.Truck, error)
	// SubmitUpdate posts one update for a truck and returns the confirmed
	// event as echoed by the server.
	SubmitUpdate(ctx context.Context, truckID int64, draft domain.UpdateDraft) (domain.TruckUpdate, error)
}
