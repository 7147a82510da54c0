package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"todoey/internal/models"
	"todoey/internal/pagination"
)

// Results is an ordered result set together with the store revision it was
// read at. A holder can ask the store whether that revision is still current
// instead of mutating the slice it holds.
type Results[T any] struct {
	Data     []T    `json:"data"`
	Revision uint64 `json:"revision"`
}

// CategoryServicer defines the contract for category storage.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name, colour string) (*models.Category, error)
	ListCategories(ctx context.Context) (*Results[models.Category], error)
	ListCategoriesPage(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategory(ctx context.Context, categoryID string) (*models.Category, error)
	EnsureColour(ctx context.Context, categoryID, colour string) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ItemServicer defines the contract for item storage.
type ItemServicer interface {
	CreateItem(ctx context.Context, categoryID, title string) (*models.Item, error)
	ListItems(ctx context.Context, categoryID, filter string) (*Results[models.Item], error)
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	ToggleDone(ctx context.Context, itemID string) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// ChangeServicer defines the contract for the change journal that backs
// store revisions.
type ChangeServicer interface {
	// Record appends a journal row inside the caller's transaction.
	Record(tx *gorm.DB, action models.ChangeAction, resourceType, resourceID string) error
	Revision(ctx context.Context) (uint64, error)
	IsStale(ctx context.Context, revision uint64) (bool, error)
	ChangesSince(ctx context.Context, seq uint64, limit int) ([]models.Change, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
