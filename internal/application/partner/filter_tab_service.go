package partner

import (
	"context"

	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
)

// FilterTabService manages the saved customer filter tabs of a staff member
type FilterTabService struct {
	tabRepo    partner.FilterTabRepository
	storageKey string
}

// NewFilterTabService creates a service for the tabs stored under storageKey
func NewFilterTabService(tabRepo partner.FilterTabRepository, storageKey string) *FilterTabService {
	if storageKey == "" {
		storageKey = partner.CustomerFiltersKey
	}
	return &FilterTabService{tabRepo: tabRepo, storageKey: storageKey}
}

// GetFilterTabs returns the principal's tabs in order
func (s *FilterTabService) GetFilterTabs(ctx context.Context, principal identity.Principal) ([]FilterTabSummary, error) {
	tabs, err := s.tabRepo.FindByOwner(ctx, principal.TenantID, principal.UserID, s.storageKey)
	if err != nil {
		return nil, err
	}
	return toFilterTabSummaries(tabs), nil
}

// SaveFilterTab appends a tab and returns the updated list
func (s *FilterTabService) SaveFilterTab(ctx context.Context, principal identity.Principal, req SaveFilterTabRequest) ([]FilterTabSummary, error) {
	tab, err := partner.NewFilterTab(principal.TenantID, principal.UserID, s.storageKey, req.Name, req.Data)
	if err != nil {
		return nil, err
	}
	if err := s.tabRepo.Append(ctx, tab); err != nil {
		return nil, err
	}
	return s.GetFilterTabs(ctx, principal)
}

// DeleteFilterTab removes the tab at the 1-based index; later tabs move up
func (s *FilterTabService) DeleteFilterTab(ctx context.Context, principal identity.Principal, index int) ([]FilterTabSummary, error) {
	if index < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tab index must be 1 or greater")
	}
	if err := s.tabRepo.DeleteAt(ctx, principal.TenantID, principal.UserID, s.storageKey, index); err != nil {
		return nil, err
	}
	return s.GetFilterTabs(ctx, principal)
}
