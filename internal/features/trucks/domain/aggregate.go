package domain

import "sort"

// LineProgress is the accumulated received quantity for one purchase-order line.
type LineProgress struct {
	// POLineID is the grouping key.
	POLineID int64 `json:"po_line_id"`
	// ItemID is the catalog item, taken from the first update that named one.
	ItemID *int64 `json:"item_id,omitempty"`
	// TotalQuantity is the sum of all deltas for the line. Corrections may
	// drive it negative; it is never clamped.
	TotalQuantity float64 `json:"total_quantity"`
}

// UpdateSummary is the derived view of a truck's history. It is recomputed
// from the history whenever the history changes and is never mutated directly.
type UpdateSummary struct {
	// LatestStatus is the status carried by the last status update, or nil
	// when the history contains none. Callers fall back to the truck's
	// externally known status.
	LatestStatus *TruckStatus `json:"latest_status"`
	// NoteCount is the number of note updates in the history.
	NoteCount int `json:"note_count"`
	// LineProgress has one entry per purchase-order line actually mentioned
	// in the history, ordered by line identifier.
	LineProgress []LineProgress `json:"line_progress"`
}

// Summarize folds a history into its three projections. It is pure and total:
// the same history always yields the same summary, and no input can make it
// fail. Input order does not matter; the history is sorted before folding.
func Summarize(history []TruckUpdate) UpdateSummary {
	summary := UpdateSummary{
		LineProgress: []LineProgress{},
	}

	totals := make(map[int64]*LineProgress)

	for _, update := range SortUpdates(history) {
		switch update.Kind {
		case UpdateKindStatus:
			if update.Status != "" {
				status := update.Status
				summary.LatestStatus = &status
			}
		case UpdateKindNote:
			summary.NoteCount++
		case UpdateKindLineProgress:
			if update.POLineID == nil {
				continue
			}
			var quantity float64
			if update.Quantity != nil {
				quantity = *update.Quantity
			}
			if existing, ok := totals[*update.POLineID]; ok {
				existing.TotalQuantity += quantity
				continue
			}
			entry := &LineProgress{
				POLineID:      *update.POLineID,
				TotalQuantity: quantity,
			}
			if update.ItemID != nil {
				itemID := *update.ItemID
				entry.ItemID = &itemID
			}
			totals[*update.POLineID] = entry
		}
	}

	for _, entry := range totals {
		summary.LineProgress = append(summary.LineProgress, *entry)
	}
	sort.Slice(summary.LineProgress, func(i, j int) bool {
		return summary.LineProgress[i].POLineID < summary.LineProgress[j].POLineID
	})

	return summary
}
