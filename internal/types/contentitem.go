package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content item discriminators. The content-items endpoint serves tasks and
// journal-style calendar entries alongside actual content drafts; ContentType
// tells them apart.
const (
	ContentTypeContent       = "content"
	ContentTypeTask          = "task"
	ContentTypeCalendarEvent = "calendar_event"
)

type ContentItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	ContentType string         `gorm:"column:content_type;not null;default:content;index" json:"content_type"`
	Stage       string         `gorm:"column:stage" json:"stage"`
	Status      string         `gorm:"column:status;default:open" json:"status"`
	Platform    string         `gorm:"column:platform" json:"platform"`
	DueDate     *time.Time     `gorm:"column:due_date" json:"due_date,omitempty"`
	Niche       string         `gorm:"column:niche;not null;default:creator;index" json:"niche"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentItem) TableName() string { return "content_item" }

func (ci *ContentItem) BeforeCreate(*gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
