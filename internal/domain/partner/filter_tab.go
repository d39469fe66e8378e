package partner

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
)

// FilterTab is a named, saved filter preset of a list view.
// Data holds the encoded query string of the saved filters.
type FilterTab struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	UserID     uuid.UUID
	StorageKey string
	Position   int
	Name       string
	Data       string
}

// NewFilterTab creates a tab; the position is assigned on save
func NewFilterTab(tenantID, userID uuid.UUID, storageKey, name, data string) (*FilterTab, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tab name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tab name cannot exceed 100 characters")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	params, err := url.ParseQuery(data)
	if err != nil {
		return nil, shared.NewDomainErrorWithCause("INVALID_TAB_DATA", "Tab data must be a query string", err)
	}

	return &FilterTab{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		StorageKey: storageKey,
		Name:       name,
		Data:       params.Encode(),
	}, nil
}

// Params decodes the saved query string
func (t *FilterTab) Params() url.Values {
	params, err := url.ParseQuery(t.Data)
	if err != nil {
		return url.Values{}
	}
	return params
}

// FilterTabRepository persists saved filter tabs per tenant, user and storage key
type FilterTabRepository interface {
	// FindByOwner returns the tabs ordered by position (1-based)
	FindByOwner(ctx context.Context, tenantID, userID uuid.UUID, storageKey string) ([]FilterTab, error)

	// Append stores the tab after the last existing one
	Append(ctx context.Context, tab *FilterTab) error

	// DeleteAt removes the tab at position and renumbers the ones after it
	DeleteAt(ctx context.Context, tenantID, userID uuid.UUID, storageKey string, position int) error
}
