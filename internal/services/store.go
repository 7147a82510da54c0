package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "todoey/internal/errors"
	"todoey/internal/logger"
)

// Store is the persistence facade for categories and items. Every mutation it
// performs is a single transaction that also appends one change journal row.
type Store struct {
	CategoryServicer
	ItemServicer
	ChangeServicer
}

// NewStore wires the category, item and change services over one database.
func NewStore(db *gorm.DB) *Store {
	changes := NewChangeService(db)
	return &Store{
		CategoryServicer: NewCategoryService(db, changes),
		ItemServicer:     NewItemService(db, changes),
		ChangeServicer:   changes,
	}
}

// writeFailed converts an error returned from a write transaction. AppErrors
// raised inside the transaction (failed preconditions) pass through; anything
// else is a storage fault, which is logged and reported as WRITE_FAILED.
func writeFailed(op string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	logger.Get().Errorw("store write failed",
		"op", op,
		"error", err,
	)
	return apperrors.Wrap(apperrors.ErrWriteFailed, err)
}
