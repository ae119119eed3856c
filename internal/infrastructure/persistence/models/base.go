package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel provides common persistence fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BranchScopedModel is a BaseModel partitioned by branch key. Every
// branch-owned row carries its key; queries always filter on it.
type BranchScopedModel struct {
	BaseModel
	BranchKey string `gorm:"type:varchar(64);not null;index"`
}
