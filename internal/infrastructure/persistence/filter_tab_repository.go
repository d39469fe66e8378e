package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFilterTabRepository implements partner.FilterTabRepository using GORM
type GormFilterTabRepository struct {
	db *gorm.DB
}

// NewGormFilterTabRepository creates a new GormFilterTabRepository
func NewGormFilterTabRepository(db *gorm.DB) *GormFilterTabRepository {
	return &GormFilterTabRepository{db: db}
}

func ownedBy(db *gorm.DB, tenantID, userID uuid.UUID, storageKey string) *gorm.DB {
	return db.Where("tenant_id = ? AND user_id = ? AND storage_key = ?", tenantID, userID, storageKey)
}

// FindByOwner returns the tabs ordered by position
func (r *GormFilterTabRepository) FindByOwner(ctx context.Context, tenantID, userID uuid.UUID, storageKey string) ([]partner.FilterTab, error) {
	var tabModels []models.FilterTabModel
	if err := ownedBy(r.db.WithContext(ctx), tenantID, userID, storageKey).
		Order("position ASC").
		Find(&tabModels).Error; err != nil {
		return nil, fmt.Errorf("list filter tabs: %w", err)
	}

	tabs := make([]partner.FilterTab, len(tabModels))
	for i := range tabModels {
		tabs[i] = *tabModels[i].ToDomain()
	}
	return tabs, nil
}

// appendAttempts bounds the retries of Append when a concurrent save takes
// the same position
const appendAttempts = 3

// Append stores the tab after the last existing one and sets its position.
// An owner without tabs has no row to lock, so two first saves can pick the
// same position; the loser retries and gives up with ErrConcurrencyConflict.
func (r *GormFilterTabRepository) Append(ctx context.Context, tab *partner.FilterTab) error {
	for attempt := 1; ; attempt++ {
		err := r.appendOnce(ctx, tab)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if attempt == appendAttempts {
			return shared.ErrConcurrencyConflict
		}
	}
}

func (r *GormFilterTabRepository) appendOnce(ctx context.Context, tab *partner.FilterTab) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last models.FilterTabModel
		err := ownedBy(tx.Clauses(lockingClause(tx)...), tab.TenantID, tab.UserID, tab.StorageKey).
			Order("position DESC").
			Limit(1).
			Find(&last).Error
		if err != nil {
			return fmt.Errorf("find last filter tab: %w", err)
		}

		tab.Position = last.Position + 1
		if err := tx.Create(models.FilterTabModelFromDomain(tab)).Error; err != nil {
			return fmt.Errorf("save filter tab: %w", err)
		}
		return nil
	})
}

// DeleteAt removes the tab at position and shifts the following tabs down by one
func (r *GormFilterTabRepository) DeleteAt(ctx context.Context, tenantID, userID uuid.UUID, storageKey string, position int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := ownedBy(tx, tenantID, userID, storageKey).
			Where("position = ?", position).
			Delete(&models.FilterTabModel{})
		if result.Error != nil {
			return fmt.Errorf("delete filter tab: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		// shift one row at a time, lowest first, so the unique position index holds
		var following []models.FilterTabModel
		if err := ownedBy(tx, tenantID, userID, storageKey).
			Where("position > ?", position).
			Order("position ASC").
			Find(&following).Error; err != nil {
			return fmt.Errorf("list following filter tabs: %w", err)
		}
		for _, tab := range following {
			if err := tx.Model(&models.FilterTabModel{}).
				Where("id = ?", tab.ID).
				Update("position", tab.Position-1).Error; err != nil {
				return fmt.Errorf("renumber filter tab: %w", err)
			}
		}
		return nil
	})
}

// lockingClause locks the owner's rows on databases that support FOR UPDATE
func lockingClause(tx *gorm.DB) []clause.Expression {
	if tx.Dialector.Name() == "postgres" {
		return []clause.Expression{clause.Locking{Strength: clause.LockingStrengthUpdate}}
	}
	return nil
}

// Ensure GormFilterTabRepository implements FilterTabRepository
var _ partner.FilterTabRepository = (*GormFilterTabRepository)(nil)
