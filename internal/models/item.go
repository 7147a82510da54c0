package models

import (
	"time"

	"todoey/internal/textkey"

	"gorm.io/gorm"
)

// Item is a single to-do entry owned by one category.
type Item struct {
	Base
	CategoryID  string     `gorm:"type:uuid;not null;index:idx_items_category_position,priority:1" json:"category_id"`
	Title       string     `gorm:"not null;default:''" json:"title"`
	TitleKey    string     `gorm:"not null;default:'';index" json:"-"`
	Done        bool       `gorm:"not null;default:false" json:"done"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	Position    int        `gorm:"not null;default:0;index:idx_items_category_position,priority:2" json:"position"`

	// Relationships
	ParentCategory *Category `gorm:"foreignKey:CategoryID" json:"parent_category,omitempty"`
}

// BeforeSave keeps the search key in step with the title.
func (i *Item) BeforeSave(tx *gorm.DB) error {
	i.TitleKey = textkey.Fold(i.Title)
	return nil
}
