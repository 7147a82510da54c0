package models

// Category is a named, coloured grouping of items.
type Category struct {
	Base
	Name   string `gorm:"not null;default:''" json:"name"`
	Colour string `gorm:"not null;default:''" json:"colour"`

	// Relationships
	Items []Item `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
