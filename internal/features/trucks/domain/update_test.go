package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateDraft_Validate verifies the per-kind payload rules.
func TestUpdateDraft_Validate(t *testing.T) {
	t.Run("StatusOK", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindStatus, Status: TruckStatusArrived}
		assert.NoError(t, draft.Validate())
	})

	t.Run("StatusMissing", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindStatus}
		assert.ErrorIs(t, draft.Validate(), ErrStatusRequired)
	})

	t.Run("StatusUnknown", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindStatus, Status: "teleported"}
		assert.ErrorIs(t, draft.Validate(), ErrInvalidStatus)
	})

	t.Run("NoteOK", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindNote, Message: "dock 4"}
		assert.NoError(t, draft.Validate())
	})

	t.Run("LineProgressOK", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindLineProgress, POLineID: ptrInt64(501), Quantity: ptrFloat64(18)}
		assert.NoError(t, draft.Validate())
	})

	t.Run("LineProgressMissingLine", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindLineProgress, Quantity: ptrFloat64(18)}
		assert.ErrorIs(t, draft.Validate(), ErrLineRequired)
	})

	t.Run("LineProgressMissingQuantity", func(t *testing.T) {
		draft := UpdateDraft{Kind: UpdateKindLineProgress, POLineID: ptrInt64(501)}
		assert.ErrorIs(t, draft.Validate(), ErrQuantityRequired)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		draft := UpdateDraft{Kind: "teardown"}
		assert.ErrorIs(t, draft.Validate(), ErrInvalidKind)
	})
}

// TestNewTentativeUpdate verifies identifier synthesis and field carry-over.
func TestNewTentativeUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	draft := UpdateDraft{
		Kind:     UpdateKindLineProgress,
		POLineID: ptrInt64(501),
		ItemID:   ptrInt64(77),
		Quantity: ptrFloat64(18),
		Message:  "second pallet",
	}

	update := NewTentativeUpdate(10, draft, "jordan", now)

	assert.True(t, update.Tentative())
	assert.Equal(t, int64(10), update.TruckID)
	assert.Equal(t, UpdateKindLineProgress, update.Kind)
	assert.Equal(t, "jordan", update.CreatedBy)
	assert.Equal(t, now, update.CreatedAt)
	assert.Equal(t, "second pallet", update.Message)
	require.NotNil(t, update.Quantity)
	assert.Equal(t, 18.0, *update.Quantity)
}

// TestNewTentativeUpdate_UniqueIDs verifies identifiers do not collide within
// a session.
func TestNewTentativeUpdate_UniqueIDs(t *testing.T) {
	now := time.Now()
	draft := UpdateDraft{Kind: UpdateKindNote}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		update := NewTentativeUpdate(10, draft, "jordan", now)
		assert.False(t, seen[update.UpdateID])
		seen[update.UpdateID] = true
	}
}

// TestTentative verifies that server-issued identifiers are not tentative.
func TestTentative(t *testing.T) {
	assert.False(t, TruckUpdate{UpdateID: "9002"}.Tentative())
	assert.True(t, TruckUpdate{UpdateID: "pending-abc"}.Tentative())
}

// TestSortUpdates verifies ascending, stable ordering without mutating input.
func TestSortUpdates(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	input := []TruckUpdate{
		{UpdateID: "c", CreatedAt: base.Add(time.Hour)},
		{UpdateID: "a", CreatedAt: base},
		{UpdateID: "b", CreatedAt: base},
	}

	sorted := SortUpdates(input)

	require.Len(t, sorted, 3)
	assert.Equal(t, "a", sorted[0].UpdateID)
	assert.Equal(t, "b", sorted[1].UpdateID)
	assert.Equal(t, "c", sorted[2].UpdateID)
	// Input untouched.
	assert.Equal(t, "c", input[0].UpdateID)
}
