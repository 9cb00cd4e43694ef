package ports

import (
	"context"

	"dockboard/internal/features/lines/domain"
)

// LineProvider defines the interface for purchase-order line lookups.
// This is a Secondary Port (Driven Port); the retail-ops adapter implements it.
type LineProvider interface {
	// SearchLines performs a free-text lookup of purchase-order lines.
	SearchLines(ctx context.Context, query string) ([]domain.LineResult, error)
}
