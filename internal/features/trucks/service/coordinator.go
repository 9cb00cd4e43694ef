package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dockboard/internal/core/logger"
	"dockboard/internal/features/trucks/domain"
	"dockboard/internal/features/trucks/ports"
	"dockboard/internal/features/trucks/store"

	"go.uber.org/zap"
)

// ErrTruckNotFound is returned when a submission targets a truck that is not
// in the local collection.
var ErrTruckNotFound = errors.New("truck not found")

// Coordinator orchestrates one update submission end to end: compose a
// tentative event, apply it optimistically, send it, then reconcile.
// Submissions may run concurrently; each one only ever touches its own
// tentative entry, located by identifier, so rollbacks and confirmations
// cannot clobber other in-flight edits.
type Coordinator struct {
	store  *store.Store
	remote ports.RemoteSource
	author string
	logger *zap.Logger
	now    func() time.Time
}

// NewCoordinator creates a Coordinator submitting on behalf of author.
func NewCoordinator(s *store.Store, remote ports.RemoteSource, author string) *Coordinator {
	return &Coordinator{
		store:  s,
		remote: remote,
		author: author,
		logger: logger.Named("coordinator"),
		now:    time.Now,
	}
}

// Submit runs the three-phase protocol for one update.
//
// Compose: the draft is validated and a tentative event synthesized. A
// rejected draft returns before any state changes, so no rollback is needed.
//
// Apply: the tentative event is appended to the target truck's history and
// the collection state observed by consumers changes immediately.
//
// Commit: the draft is sent to the remote API. On success the tentative
// entry is replaced, by identifier, with the normalized confirmed event,
// never appended alongside it. On failure the tentative entry is removed,
// again by identifier, and the error is propagated.
//
// There is deliberately no submission timeout beyond what ctx or the HTTP
// client impose: a submission that never resolves leaves the optimistic
// state visible, matching the consuming dashboard's behavior.
func (c *Coordinator) Submit(ctx context.Context, truckID int64, draft domain.UpdateDraft) (domain.TruckUpdate, error) {
	if err := draft.Validate(); err != nil {
		return domain.TruckUpdate{}, err
	}
	if c.store.Snapshot().Find(truckID) == nil {
		return domain.TruckUpdate{}, fmt.Errorf("%w: %d", ErrTruckNotFound, truckID)
	}

	tentative := domain.NewTentativeUpdate(truckID, draft, c.author, c.now().UTC())

	c.store.Mutate(func(col store.Collection) store.Collection {
		truck := col.Find(truckID)
		if truck == nil {
			return col
		}
		return store.ReplaceHistory(col, truckID, append(truck.History, tentative))
	})

	c.logger.Debug("optimistic apply",
		zap.Int64("truck_id", truckID),
		zap.String("update_id", tentative.UpdateID),
		zap.String("kind", string(draft.Kind)),
	)

	confirmed, err := c.remote.SubmitUpdate(ctx, truckID, draft)
	if err != nil {
		c.rollback(truckID, tentative.UpdateID)
		c.logger.Warn("submission failed, rolled back",
			zap.Int64("truck_id", truckID),
			zap.String("update_id", tentative.UpdateID),
			zap.Error(err),
		)
		return domain.TruckUpdate{}, fmt.Errorf("submit update: %w", err)
	}

	confirmed = normalizeConfirmed(confirmed, tentative)
	c.confirm(truckID, tentative.UpdateID, confirmed)

	c.logger.Debug("submission confirmed",
		zap.Int64("truck_id", truckID),
		zap.String("tentative_id", tentative.UpdateID),
		zap.String("update_id", confirmed.UpdateID),
	)
	return confirmed, nil
}

// rollback removes this submission's tentative entry. Other entries, including
// tentative entries belonging to other in-flight submissions, are untouched.
func (c *Coordinator) rollback(truckID int64, tentativeID string) {
	c.store.Mutate(func(col store.Collection) store.Collection {
		truck := col.Find(truckID)
		if truck == nil {
			return col
		}
		history := make([]domain.TruckUpdate, 0, len(truck.History))
		for _, update := range truck.History {
			if update.UpdateID != tentativeID {
				history = append(history, update)
			}
		}
		return store.ReplaceHistory(col, truckID, history)
	})
}

// confirm swaps the tentative entry for the confirmed one. The resulting
// history contains exactly one entry for the submission: if a refresh already
// delivered the server's copy, the tentative entry is dropped instead of
// duplicated; if a refresh discarded the tentative entry, the confirmed one
// is appended.
func (c *Coordinator) confirm(truckID int64, tentativeID string, confirmed domain.TruckUpdate) {
	c.store.Mutate(func(col store.Collection) store.Collection {
		truck := col.Find(truckID)
		if truck == nil {
			return col
		}

		history := make([]domain.TruckUpdate, 0, len(truck.History)+1)
		placed := false
		for _, update := range truck.History {
			switch update.UpdateID {
			case confirmed.UpdateID:
				if !placed {
					history = append(history, confirmed)
					placed = true
				}
			case tentativeID:
				if !placed {
					history = append(history, confirmed)
					placed = true
				}
			default:
				history = append(history, update)
			}
		}
		if !placed {
			history = append(history, confirmed)
		}
		return store.ReplaceHistory(col, truckID, history)
	})
}

// normalizeConfirmed fills fields the server echo omitted with the values the
// client already knows. The server may return only a partial delta.
func normalizeConfirmed(confirmed, tentative domain.TruckUpdate) domain.TruckUpdate {
	if confirmed.TruckID == 0 {
		confirmed.TruckID = tentative.TruckID
	}
	if confirmed.Kind == "" {
		confirmed.Kind = tentative.Kind
	}
	if confirmed.Message == "" {
		confirmed.Message = tentative.Message
	}
	if confirmed.Status == "" {
		confirmed.Status = tentative.Status
	}
	if confirmed.POLineID == nil {
		confirmed.POLineID = tentative.POLineID
	}
	if confirmed.ItemID == nil {
		confirmed.ItemID = tentative.ItemID
	}
	if confirmed.Quantity == nil {
		confirmed.Quantity = tentative.Quantity
	}
	if confirmed.CreatedBy == "" {
		confirmed.CreatedBy = tentative.CreatedBy
	}
	if confirmed.CreatedAt.IsZero() {
		confirmed.CreatedAt = tentative.CreatedAt
	}
	return confirmed
}
