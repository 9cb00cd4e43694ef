package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TruckStatus represents the lifecycle status of an incoming truck.
type TruckStatus string

const (
	// TruckStatusScheduled indicates the truck has a planned arrival.
	TruckStatusScheduled TruckStatus = "scheduled"
	// TruckStatusArrived indicates the truck is at the dock.
	TruckStatusArrived TruckStatus = "arrived"
	// TruckStatusUnloading indicates receiving is in progress.
	TruckStatusUnloading TruckStatus = "unloading"
	// TruckStatusCompleted indicates receiving has finished.
	TruckStatusCompleted TruckStatus = "completed"
	// TruckStatusCancelled indicates the truck was cancelled or closed with an exception.
	TruckStatusCancelled TruckStatus = "cancelled"
)

// UpdateKind identifies the variant of a truck update. The set is closed:
// no other kinds are valid anywhere in the system.
type UpdateKind string

const (
	// UpdateKindStatus carries a new truck status.
	UpdateKindStatus UpdateKind = "status"
	// UpdateKindNote carries a free-text note.
	UpdateKindNote UpdateKind = "note"
	// UpdateKindLineProgress carries a signed received-quantity delta for a
	// purchase-order line.
	UpdateKindLineProgress UpdateKind = "line_progress"
)

// Validation errors reported before any update reaches a truck's history.
var (
	ErrInvalidKind      = errors.New("invalid update kind")
	ErrStatusRequired   = errors.New("status update requires a status")
	ErrInvalidStatus    = errors.New("invalid truck status")
	ErrLineRequired     = errors.New("line progress update requires a po line")
	ErrQuantityRequired = errors.New("line progress update requires a quantity")
)

// tentativePrefix marks client-synthesized identifiers. Server identifiers
// are decimal integers, so the prefix can never collide with them.
const tentativePrefix = "pending-"

// TruckUpdate is one immutable fact in a truck's history. Entries are never
// edited in place: a tentative update is either replaced by its confirmed
// counterpart or removed on a failed submission.
type TruckUpdate struct {
	// UpdateID is unique within the truck. Tentative updates carry a
	// client-synthesized identifier until the server issues one.
	UpdateID string `json:"update_id"`
	// TruckID is the owning truck.
	TruckID int64 `json:"truck_id"`
	// Kind selects how the payload fields are interpreted.
	Kind UpdateKind `json:"update_type"`
	// Message is an optional annotation, usable on any kind.
	Message string `json:"message,omitempty"`
	// Status is the new truck status. Only meaningful for UpdateKindStatus.
	Status TruckStatus `json:"status,omitempty"`
	// POLineID references the purchase-order line for line progress.
	POLineID *int64 `json:"po_line_id,omitempty"`
	// ItemID references the catalog item for line progress.
	ItemID *int64 `json:"item_id,omitempty"`
	// Quantity is the signed received-quantity delta for line progress.
	// Negative deltas are corrections and are never clamped.
	Quantity *float64 `json:"quantity,omitempty"`
	// CreatedBy is the author's display identity.
	CreatedBy string `json:"created_by,omitempty"`
	// CreatedAt orders the update within the history.
	CreatedAt time.Time `json:"created_at"`
}

// Tentative reports whether the update still carries a client-synthesized
// identifier, i.e. it has not been confirmed by the server.
func (u TruckUpdate) Tentative() bool {
	return strings.HasPrefix(u.UpdateID, tentativePrefix)
}

// UpdateDraft is the caller-supplied payload for a new submission.
type UpdateDraft struct {
	Kind     UpdateKind `json:"update_type"`
	Message  string     `json:"message,omitempty"`
	Status   TruckStatus `json:"status,omitempty"`
	POLineID *int64     `json:"po_line_id,omitempty"`
	ItemID   *int64     `json:"item_id,omitempty"`
	Quantity *float64   `json:"quantity,omitempty"`
}

// Validate enforces the per-kind payload rules. It runs before the optimistic
// apply, so a rejected draft never requires a rollback.
func (d UpdateDraft) Validate() error {
	switch d.Kind {
	case UpdateKindStatus:
		if d.Status == "" {
			return ErrStatusRequired
		}
		if !validStatus(d.Status) {
			return ErrInvalidStatus
		}
	case UpdateKindNote:
		// A note needs nothing beyond its message, which may be empty.
	case UpdateKindLineProgress:
		if d.POLineID == nil {
			return ErrLineRequired
		}
		if d.Quantity == nil {
			return ErrQuantityRequired
		}
	default:
		return ErrInvalidKind
	}
	return nil
}

func validStatus(s TruckStatus) bool {
	switch s {
	case TruckStatusScheduled, TruckStatusArrived, TruckStatusUnloading,
		TruckStatusCompleted, TruckStatusCancelled:
		return true
	}
	return false
}

// NewTentativeUpdate synthesizes the client-side update for a submission:
// a unique tentative identifier, the submitting user's display identity and
// the given instant as the timestamp.
func NewTentativeUpdate(truckID int64, draft UpdateDraft, author string, now time.Time) TruckUpdate {
	return TruckUpdate{
		UpdateID:  tentativePrefix + uuid.NewString(),
		TruckID:   truckID,
		Kind:      draft.Kind,
		Message:   draft.Message,
		Status:    draft.Status,
		POLineID:  draft.POLineID,
		ItemID:    draft.ItemID,
		Quantity:  draft.Quantity,
		CreatedBy: author,
		CreatedAt: now,
	}
}

// SortUpdates returns a copy of history ordered ascending by CreatedAt.
// The sort is stable: timestamp ties keep their relative insertion order,
// which the last-write-wins status derivation depends on.
func SortUpdates(history []TruckUpdate) []TruckUpdate {
	sorted := make([]TruckUpdate, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
