package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"todoey/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Colour: "#3498DB",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestItem creates an item at the given position of a category.
func CreateTestItem(t *testing.T, db *gorm.DB, categoryID string, position int) *models.Item {
	t.Helper()

	created := time.Now().UTC()
	item := &models.Item{
		CategoryID:  categoryID,
		Title:       fmt.Sprintf("Test Item %d", nextID()),
		DateCreated: &created,
		Position:    position,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// FailWrites makes every create on the named table fail with err. The
// failure is injected before the insert runs, like a disk fault would be.
func FailWrites(t *testing.T, db *gorm.DB, table string, err error) {
	t.Helper()

	name := "testutil:fail_" + table
	cb := db.Callback().Create().Before("gorm:create")
	if regErr := cb.Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}); regErr != nil {
		t.Fatalf("failed to register failing callback: %v", regErr)
	}
}
