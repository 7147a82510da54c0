package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "todoey/internal/errors"
	"todoey/internal/models"
	"todoey/internal/textkey"
)

// itemService handles item storage.
type itemService struct {
	db      *gorm.DB
	changes ChangeServicer
	now     func() time.Time
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB, changes ChangeServicer) ItemServicer {
	return &itemService{db: db, changes: changes, now: time.Now}
}

// CreateItem appends a new item to the end of a category's item list.
func (s *itemService) CreateItem(ctx context.Context, categoryID, title string) (*models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item title is required")
	}

	var item *models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, categoryID)
		if err != nil {
			return err
		}

		// Positions are never reused, so deleted rows count too.
		var position int
		if err := tx.Unscoped().Model(&models.Item{}).
			Where("category_id = ?", category.ID).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&position).Error; err != nil {
			return err
		}

		created := s.now().UTC()
		item = &models.Item{
			CategoryID:  category.ID,
			Title:       title,
			DateCreated: &created,
			Position:    position,
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return s.changes.Record(tx, models.ChangeActionCreate, models.ResourceItem, item.ID)
	})
	if err != nil {
		return nil, writeFailed("create_item", err)
	}

	return item, nil
}

// ListItems returns the items of a category. Without a filter they are
// ordered by title, ties keeping list order. With a filter only titles
// containing it (ignoring case and diacritics) are returned, oldest first.
func (s *itemService) ListItems(ctx context.Context, categoryID, filter string) (*Results[models.Item], error) {
	db := s.db.WithContext(ctx)

	revision, err := s.changes.Revision(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := findCategory(db, categoryID); err != nil {
		return nil, err
	}

	query := db.Where("category_id = ?", categoryID)
	if filter != "" {
		pattern := "%" + textkey.EscapeLike(textkey.Fold(filter)) + "%"
		query = query.Where("title_key LIKE ? ESCAPE '\\'", pattern).
			Order("date_created ASC").
			Order("position ASC")
	} else {
		query = query.Order("position ASC")
	}

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if items == nil {
		items = []models.Item{}
	}

	if filter == "" {
		slices.SortStableFunc(items, func(a, b models.Item) int {
			return textkey.Compare(a.Title, b.Title)
		})
	}

	return &Results[models.Item]{Data: items, Revision: revision}, nil
}

// GetItem retrieves an item with its parent category loaded.
func (s *itemService) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).Preload("ParentCategory").Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

func findItem(db *gorm.DB, itemID string) (*models.Item, error) {
	var item models.Item
	if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// ToggleDone flips an item's done flag. The returned item reflects the
// committed state; on error nothing is returned and nothing changed.
func (s *itemService) ToggleDone(ctx context.Context, itemID string) (*models.Item, error) {
	var item *models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findItem(tx, itemID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Item{}).
			Where("id = ?", found.ID).
			Update("done", gorm.Expr("NOT done")).Error; err != nil {
			return err
		}
		if item, err = findItem(tx, found.ID); err != nil {
			return err
		}
		return s.changes.Record(tx, models.ChangeActionToggle, models.ResourceItem, item.ID)
	})
	if err != nil {
		return nil, writeFailed("toggle_done", err)
	}

	return item, nil
}

// DeleteItem removes an item, and with it its place in the category's list.
func (s *itemService) DeleteItem(ctx context.Context, itemID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		return s.changes.Record(tx, models.ChangeActionDelete, models.ResourceItem, item.ID)
	})
	if err != nil {
		return writeFailed("delete_item", err)
	}
	return nil
}
