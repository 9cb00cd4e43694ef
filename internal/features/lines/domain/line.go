package domain

// LineResult is one purchase-order line returned by a free-text search.
// Results feed the line picker when composing a line-progress update.
type LineResult struct {
	// POLineID is the purchase-order line identifier.
	POLineID int64 `json:"po_line_id"`
	// POID is the owning purchase order.
	POID int64 `json:"po_id"`
	// ItemID is the catalog item on the line.
	ItemID int64 `json:"item_id"`
	// SKU is the item's stock keeping unit, when the API exposes it.
	SKU string `json:"sku,omitempty"`
	// Description is the line's display text.
	Description string `json:"description,omitempty"`
	// QtyOrdered is the ordered quantity.
	QtyOrdered float64 `json:"qty_ordered"`
	// QtyReceived is the quantity received so far.
	QtyReceived float64 `json:"qty_received"`
}
