package store

import (
	"testing"
	"time"

	"dockboard/internal/features/trucks/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }

func twoTrucks() Collection {
	return Collection{
		&domain.Truck{TruckID: 10, Reference: "PO-1001", Status: domain.TruckStatusScheduled},
		&domain.Truck{TruckID: 20, Reference: "PO-1002", Status: domain.TruckStatusScheduled},
	}
}

// TestReplaceHistory_RecomputesSummary verifies the point update derives a
// fresh aggregate.
func TestReplaceHistory_RecomputesSummary(t *testing.T) {
	col := twoTrucks()
	history := []domain.TruckUpdate{
		{UpdateID: "1", Kind: domain.UpdateKindStatus, Status: domain.TruckStatusArrived, CreatedAt: time.Now()},
	}

	next := ReplaceHistory(col, 10, history)

	updated := next.Find(10)
	require.NotNil(t, updated)
	require.NotNil(t, updated.Summary.LatestStatus)
	assert.Equal(t, domain.TruckStatusArrived, *updated.Summary.LatestStatus)
	assert.Len(t, updated.History, 1)
}

// TestReplaceHistory_ScopedMutation verifies unrelated trucks keep their
// object identity and state.
func TestReplaceHistory_ScopedMutation(t *testing.T) {
	col := twoTrucks()
	other := col.Find(20)

	next := ReplaceHistory(col, 10, []domain.TruckUpdate{
		{UpdateID: "1", Kind: domain.UpdateKindNote, CreatedAt: time.Now()},
	})

	// Same pointer for the untouched truck, new pointer for the mutated one.
	assert.Same(t, other, next.Find(20))
	assert.NotSame(t, col.Find(10), next.Find(10))
	// Previous collection untouched.
	assert.Empty(t, col.Find(10).History)
}

// TestReplaceHistory_MissingTruck verifies the benign no-op.
func TestReplaceHistory_MissingTruck(t *testing.T) {
	col := twoTrucks()

	next := ReplaceHistory(col, 999, []domain.TruckUpdate{
		{UpdateID: "1", Kind: domain.UpdateKindNote},
	})

	assert.Equal(t, col, next)
	assert.Same(t, col.Find(10), next.Find(10))
	assert.Same(t, col.Find(20), next.Find(20))
}

// TestStore_SnapshotReplace verifies basic get/set behavior.
func TestStore_SnapshotReplace(t *testing.T) {
	s := New()
	assert.Empty(t, s.Snapshot())

	col := twoTrucks()
	s.Replace(col)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Same(t, col.Find(10), snapshot.Find(10))
}

// TestStore_Mutate verifies that Mutate installs the function's result.
func TestStore_Mutate(t *testing.T) {
	s := New()
	s.Replace(twoTrucks())

	result := s.Mutate(func(col Collection) Collection {
		return ReplaceHistory(col, 10, []domain.TruckUpdate{
			{UpdateID: "1", Kind: domain.UpdateKindLineProgress, POLineID: ptrInt64(501), Quantity: ptrFloat64(20), CreatedAt: time.Now()},
		})
	})

	assert.Equal(t, result, s.Snapshot())
	require.Len(t, s.Snapshot().Find(10).Summary.LineProgress, 1)
	assert.Equal(t, 20.0, s.Snapshot().Find(10).Summary.LineProgress[0].TotalQuantity)
}

// TestStore_Subscribe verifies notification and cancellation.
func TestStore_Subscribe(t *testing.T) {
	s := New()

	var calls int
	cancel := s.Subscribe(func(col Collection) {
		calls++
	})

	s.Replace(twoTrucks())
	assert.Equal(t, 1, calls)

	s.Mutate(func(col Collection) Collection { return col })
	assert.Equal(t, 2, calls)

	cancel()
	s.Replace(Collection{})
	assert.Equal(t, 2, calls)
}
