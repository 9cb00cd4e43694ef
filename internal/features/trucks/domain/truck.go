package domain

import "time"

// TruckLine is one expected purchase-order line on a truck's manifest.
type TruckLine struct {
	TruckLineID int64    `json:"truck_line_id"`
	POLineID    int64    `json:"po_line_id"`
	ItemID      int64    `json:"item_id"`
	Description string   `json:"description,omitempty"`
	QtyExpected *float64 `json:"qty_expected,omitempty"`
}

// Truck is one tracked inbound shipment tied to a purchase order.
// Reference and carrier metadata are immutable for the session; History is
// append-only and Summary is always derived from it.
type Truck struct {
	TruckID          int64         `json:"truck_id"`
	POID             int64         `json:"po_id"`
	Reference        string        `json:"reference"`
	Carrier          string        `json:"carrier,omitempty"`
	Status           TruckStatus   `json:"status"`
	ScheduledArrival *time.Time    `json:"scheduled_arrival,omitempty"`
	ArrivedAt        *time.Time    `json:"arrived_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	Lines            []TruckLine   `json:"lines"`
	History          []TruckUpdate `json:"history"`
	Summary          UpdateSummary `json:"summary"`
}

// WithHistory returns a new Truck carrying the given history, sorted, with a
// freshly derived summary. The receiver is not modified.
func (t *Truck) WithHistory(history []TruckUpdate) *Truck {
	next := *t
	next.History = SortUpdates(history)
	next.Summary = Summarize(next.History)
	return &next
}

// EffectiveStatus is the derived status when the history carries one, falling
// back to the truck's externally known status otherwise.
func (t *Truck) EffectiveStatus() TruckStatus {
	if t.Summary.LatestStatus != nil {
		return *t.Summary.LatestStatus
	}
	return t.Status
}
