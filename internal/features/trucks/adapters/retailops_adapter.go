package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dockboard/internal/core/config"
	"dockboard/internal/core/httpclient"
	"dockboard/internal/core/logger"
	"dockboard/internal/features/trucks/domain"

	"go.uber.org/zap"
)

// RetailOpsAdapter implements the RemoteSource port against the retail-ops
// REST API.
type RetailOpsAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the retail-ops connection details.
	config config.RemoteAPIConfig
}

// NewRetailOpsAdapter creates a new instance of RetailOpsAdapter.
func NewRetailOpsAdapter(cfg config.RemoteAPIConfig) *RetailOpsAdapter {
	return &RetailOpsAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// authorize attaches the bearer credential, or the identity/role header pair
// when no token is configured.
func (a *RetailOpsAdapter) authorize(req *http.Request) {
	if a.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.Token)
		return
	}
	req.Header.Set("X-User-Id", a.config.UserID)
	req.Header.Set("X-User-Role", a.config.UserRole)
}

// ListTrucks fetches all incoming trucks with their update histories.
func (a *RetailOpsAdapter) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	url := fmt.Sprintf("%s/incoming-trucks", a.config.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retail-ops API returned status: %d", resp.StatusCode)
	}

	var rawTrucks []rawTruck
	if err := json.NewDecoder(resp.Body).Decode(&rawTrucks); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	trucks := make([]*domain.Truck, 0, len(rawTrucks))
	for _, raw := range rawTrucks {
		truck, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map truck %d: %w", raw.TruckID, err)
		}
		trucks = append(trucks, truck)
	}
	return trucks, nil
}

// SubmitUpdate posts one update for a truck and normalizes the echoed event.
func (a *RetailOpsAdapter) SubmitUpdate(ctx context.Context, truckID int64, draft domain.UpdateDraft) (domain.TruckUpdate, error) {
	url := fmt.Sprintf("%s/incoming-trucks/%d/updates", a.config.URL, truckID)

	body, err := json.Marshal(draft)
	if err != nil {
		return domain.TruckUpdate{}, fmt.Errorf("failed to encode update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.TruckUpdate{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.TruckUpdate{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.TruckUpdate{}, fmt.Errorf("retail-ops API returned status: %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TruckUpdate{}, fmt.Errorf("failed to read response: %w", err)
	}

	return normalizeSubmitEcho(payload, truckID)
}

// HealthCheck verifies that the retail-ops API is reachable and the
// credentials are accepted.
func (a *RetailOpsAdapter) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", a.config.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// normalizeSubmitEcho maps the write-path response to a domain update. The
// endpoint has echoed two shapes over time: the update object directly, or
// nested under an "update" key, possibly with po/line sub-objects carrying
// the line references. All of them collapse to the same domain event.
func normalizeSubmitEcho(payload []byte, truckID int64) (domain.TruckUpdate, error) {
	var envelope struct {
		Update json.RawMessage `json:"update"`
	}
	body := payload
	if err := json.Unmarshal(payload, &envelope); err == nil && len(envelope.Update) > 0 {
		body = envelope.Update
	}

	var raw rawUpdate
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.TruckUpdate{}, fmt.Errorf("failed to decode update echo: %w", err)
	}

	update := raw.toDomain()
	if update.TruckID == 0 {
		update.TruckID = truckID
	}
	return update, nil
}

// internal structs for mapping

// rawTruck represents one truck record from GET /incoming-trucks.
type rawTruck struct {
	TruckID          int64           `json:"truck_id"`
	POID             int64           `json:"po_id"`
	Reference        string          `json:"reference"`
	Carrier          string          `json:"carrier"`
	Status           string          `json:"status"`
	ScheduledArrival *apiTime        `json:"scheduled_arrival"`
	ArrivedAt        *apiTime        `json:"arrived_at"`
	CreatedAt        apiTime         `json:"created_at"`
	Lines            []rawTruckLine  `json:"lines"`
	Updates          json.RawMessage `json:"updates"`
}

// rawTruckLine represents an expected manifest line.
type rawTruckLine struct {
	TruckLineID int64    `json:"truck_line_id"`
	POLineID    int64    `json:"po_line_id"`
	ItemID      int64    `json:"item_id"`
	Description string   `json:"description"`
	QtyExpected *float64 `json:"qty_expected"`
}

// rawUpdatesEnvelope is the canonical shape of the updates field: the
// server-side aggregate with the full history nested inside. The aggregate
// fields are advisory; the client re-derives them from the history.
type rawUpdatesEnvelope struct {
	History []rawUpdate `json:"history"`
}

// rawUpdate represents one update record.
type rawUpdate struct {
	UpdateID  json.Number `json:"update_id"`
	TruckID   int64       `json:"truck_id"`
	Kind      string      `json:"update_type"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	POLineID  *int64      `json:"po_line_id"`
	ItemID    *int64      `json:"item_id"`
	Quantity  *float64    `json:"quantity"`
	CreatedBy string      `json:"created_by"`
	CreatedAt apiTime     `json:"created_at"`

	// Legacy echoes nest the line references in sub-objects.
	PO   *rawLineRef `json:"po"`
	Line *rawLineRef `json:"line"`
}

// rawLineRef is a nested po/line reference in a legacy submit echo.
type rawLineRef struct {
	POLineID *int64 `json:"po_line_id"`
	ItemID   *int64 `json:"item_id"`
}

func (r rawTruck) toDomain() (*domain.Truck, error) {
	history, err := decodeUpdates(r.Updates)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.TruckLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.TruckLine{
			TruckLineID: line.TruckLineID,
			POLineID:    line.POLineID,
			ItemID:      line.ItemID,
			Description: line.Description,
			QtyExpected: line.QtyExpected,
		})
	}

	truck := &domain.Truck{
		TruckID:          r.TruckID,
		POID:             r.POID,
		Reference:        r.Reference,
		Carrier:          r.Carrier,
		Status:           domain.TruckStatus(r.Status),
		ScheduledArrival: r.ScheduledArrival.timePtr(),
		ArrivedAt:        r.ArrivedAt.timePtr(),
		CreatedAt:        time.Time(r.CreatedAt),
		Lines:            lines,
	}
	return truck.WithHistory(history), nil
}

// decodeUpdates accepts the canonical nested envelope and, for older
// deployments, the legacy flat array of update records.
func decodeUpdates(raw json.RawMessage) ([]domain.TruckUpdate, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var envelope rawUpdatesEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		return mapUpdates(envelope.History), nil
	}

	var flat []rawUpdate
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unrecognized updates shape: %w", err)
	}
	logger.Get().Debug("parsed legacy flat updates shape", zap.Int("count", len(flat)))
	return mapUpdates(flat), nil
}

func mapUpdates(raw []rawUpdate) []domain.TruckUpdate {
	updates := make([]domain.TruckUpdate, 0, len(raw))
	for _, r := range raw {
		updates = append(updates, r.toDomain())
	}
	return updates
}

func (r rawUpdate) toDomain() domain.TruckUpdate {
	update := domain.TruckUpdate{
		UpdateID:  r.UpdateID.String(),
		TruckID:   r.TruckID,
		Kind:      domain.UpdateKind(r.Kind),
		Message:   r.Message,
		Status:    domain.TruckStatus(r.Status),
		POLineID:  r.POLineID,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		CreatedBy: r.CreatedBy,
		CreatedAt: time.Time(r.CreatedAt),
	}

	// Flatten nested line references when the flat fields are absent.
	for _, ref := range []*rawLineRef{r.Line, r.PO} {
		if ref == nil {
			continue
		}
		if update.POLineID == nil {
			update.POLineID = ref.POLineID
		}
		if update.ItemID == nil {
			update.ItemID = ref.ItemID
		}
	}
	return update
}

// apiTime handles the retail-ops API's timestamp formats: RFC3339 with or
// without an offset.
type apiTime time.Time

// UnmarshalJSON parses the timestamp formats used by the retail-ops API.
func (t *apiTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		*t = apiTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05", s)
	}
	if err != nil {
		logger.Get().Warn("Failed to parse date", zap.String("date", s), zap.Error(err))
		return nil
	}
	*t = apiTime(parsed)
	return nil
}

func (t *apiTime) timePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	if v.IsZero() {
		return nil
	}
	return &v
}
