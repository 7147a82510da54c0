package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "todoey/internal/errors"
	"todoey/internal/models"
	"todoey/internal/pagination"
	"todoey/internal/palette"
	"todoey/internal/validator"
)

// categoryService handles category storage.
type categoryService struct {
	db      *gorm.DB
	changes ChangeServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, changes ChangeServicer) CategoryServicer {
	return &categoryService{db: db, changes: changes}
}

// normalizeColour validates an optional colour. An empty colour stays empty.
func normalizeColour(colour string) (string, error) {
	colour = strings.TrimSpace(colour)
	if colour == "" {
		return "", nil
	}
	if !validator.IsHexColor(colour) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "colour must be a #RGB or #RRGGBB hex value")
	}
	return palette.Normalize(colour), nil
}

// CreateCategory creates a new category. Without a colour, one is picked
// from the flat palette.
func (s *categoryService) CreateCategory(ctx context.Context, name, colour string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	colour, err := normalizeColour(colour)
	if err != nil {
		return nil, err
	}
	if colour == "" {
		colour = palette.Random()
	}

	category := &models.Category{
		Name:   name,
		Colour: colour,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return s.changes.Record(tx, models.ChangeActionCreate, models.ResourceCategory, category.ID)
	})
	if err != nil {
		return nil, writeFailed("create_category", err)
	}

	return category, nil
}

// ListCategories returns every category in insertion order.
func (s *categoryService) ListCategories(ctx context.Context) (*Results[models.Category], error) {
	// Read the revision first: if a write lands between the two queries the
	// data is newer than the revision, and the holder refetches.
	revision, err := s.changes.Revision(ctx)
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}

	return &Results[models.Category]{Data: categories, Revision: revision}, nil
}

// ListCategoriesPage retrieves one page of categories in insertion order.
func (s *categoryService) ListCategoriesPage(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	revision, err := s.changes.Revision(ctx)
	if err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.WithContext(ctx).Model(&models.Category{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("id ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	result.Revision = revision
	return &result, nil
}

// GetCategory retrieves a category by ID
func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	return findCategory(s.db.WithContext(ctx), categoryID)
}

func findCategory(db *gorm.DB, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// EnsureColour sets the category's colour. With an empty colour, a category
// that already has one is returned unchanged and one without gets a random
// palette colour.
func (s *categoryService) EnsureColour(ctx context.Context, categoryID, colour string) (*models.Category, error) {
	colour, err := normalizeColour(colour)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findCategory(tx, categoryID)
		if err != nil {
			return err
		}
		category = found

		if colour == "" {
			if category.Colour != "" {
				return nil
			}
			colour = palette.Random()
		}
		if colour == category.Colour {
			return nil
		}

		if err := tx.Model(category).Update("colour", colour).Error; err != nil {
			return err
		}
		category.Colour = colour
		return s.changes.Record(tx, models.ChangeActionColour, models.ResourceCategory, category.ID)
	})
	if err != nil {
		return nil, writeFailed("ensure_colour", err)
	}

	return category, nil
}

// DeleteCategory deletes a category together with all of its items.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, categoryID)
		if err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(category).Error; err != nil {
			return err
		}
		return s.changes.Record(tx, models.ChangeActionDelete, models.ResourceCategory, category.ID)
	})
	if err != nil {
		return writeFailed("delete_category", err)
	}
	return nil
}
