package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "todoey/internal/errors"
	"todoey/internal/models"
)

const (
	defaultChangesLimit = 100
	maxChangesLimit     = 1000
)

// changeService handles the change journal.
type changeService struct {
	db *gorm.DB
}

// NewChangeService creates a new ChangeServicer.
func NewChangeService(db *gorm.DB) ChangeServicer {
	return &changeService{db: db}
}

// Record appends a journal entry using tx. An error aborts the surrounding
// transaction.
func (s *changeService) Record(tx *gorm.DB, action models.ChangeAction, resourceType, resourceID string) error {
	entry := &models.Change{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	return tx.Create(entry).Error
}

// Revision returns the sequence number of the latest change, or 0 for an
// empty store.
func (s *changeService) Revision(ctx context.Context) (uint64, error) {
	var revision uint64
	if err := s.db.WithContext(ctx).Model(&models.Change{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&revision).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return revision, nil
}

// IsStale reports whether any change has been committed after revision.
func (s *changeService) IsStale(ctx context.Context, revision uint64) (bool, error) {
	current, err := s.Revision(ctx)
	if err != nil {
		return false, err
	}
	return current > revision, nil
}

// ChangesSince returns up to limit journal entries with a sequence number
// greater than seq, oldest first.
func (s *changeService) ChangesSince(ctx context.Context, seq uint64, limit int) ([]models.Change, error) {
	if limit <= 0 {
		limit = defaultChangesLimit
	}
	if limit > maxChangesLimit {
		limit = maxChangesLimit
	}

	var changes []models.Change
	if err := s.db.WithContext(ctx).
		Where("seq > ?", seq).
		Order("seq ASC").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if changes == nil {
		changes = []models.Change{}
	}
	return changes, nil
}

// Prune deletes journal entries created before cutoff. The newest entry is
// always kept so the store revision never moves backwards.
func (s *changeService) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	db := s.db.WithContext(ctx)
	latest := db.Model(&models.Change{}).Select("MAX(seq)")
	result := db.Where("created_at < ? AND seq < (?)", cutoff, latest).Delete(&models.Change{})
	if result.Error != nil {
		return 0, writeFailed("prune_changes", result.Error)
	}
	return result.RowsAffected, nil
}
