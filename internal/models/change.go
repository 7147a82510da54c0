package models

import "time"

// ChangeAction names the kind of mutation recorded in the change journal.
type ChangeAction string

const (
	ChangeActionCreate ChangeAction = "create"
	ChangeActionDelete ChangeAction = "delete"
	ChangeActionToggle ChangeAction = "toggle"
	ChangeActionColour ChangeAction = "colour"
)

// Resource types recorded in the change journal.
const (
	ResourceCategory = "category"
	ResourceItem     = "item"
)

// Change is one row of the append-only change journal. Every mutating
// transaction writes exactly one, and the highest Seq is the store revision.
type Change struct {
	Seq          uint64       `gorm:"primaryKey;autoIncrement" json:"seq"`
	Action       ChangeAction `gorm:"not null" json:"action"`
	ResourceType string       `gorm:"not null" json:"resource_type"`
	ResourceID   string       `gorm:"type:uuid;not null" json:"resource_id"`
	CreatedAt    time.Time    `json:"created_at"`
}
