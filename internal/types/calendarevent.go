package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarEvent stores start/end as UTC instants. Display-side timezone
// conversion is the caller's job (pipeline.ResolveTimezone / DayFromUTC).
type CalendarEvent struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description" json:"description"`
	StartTime     time.Time      `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime       time.Time      `gorm:"column:end_time;not null" json:"end_time"`
	Type          string         `gorm:"column:type;default:meeting" json:"type"`
	Color         string         `gorm:"column:color" json:"color"`
	Status        string         `gorm:"column:status;default:scheduled" json:"status"`
	Niche         string         `gorm:"column:niche;not null;default:creator;index" json:"niche"`
	ClientID      *uuid.UUID     `gorm:"type:uuid;index" json:"client_id,omitempty"`
	OpportunityID *uuid.UUID     `gorm:"type:uuid;index" json:"opportunity_id,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CalendarEvent) TableName() string { return "calendar_event" }

func (ce *CalendarEvent) BeforeCreate(*gorm.DB) error {
	if ce.ID == uuid.Nil {
		ce.ID = uuid.New()
	}
	return nil
}
