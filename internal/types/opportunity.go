package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Opportunity is a deal in a niche's pipeline. The database only models the
// 6-value status enum; the precise UI stage id, the owning niche, and any
// niche-specific custom fields travel inside the notes column as a JSON
// envelope (pipeline.NotesMeta). Title, probability, and the close date are
// repurposed per niche: title doubles as client/campaign/guest/company
// name, probability carries the session count for coaches, and
// expected_close_date serves as follow-up, discovery-call, scheduled, or
// due date.
type Opportunity struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title             string         `gorm:"column:title;not null" json:"title"`
	Description       string         `gorm:"column:description" json:"description"`
	Value             float64        `gorm:"column:value;not null;default:0" json:"value"`
	Status            string         `gorm:"column:status;not null;default:prospecting;index" json:"status"`
	Probability       int            `gorm:"column:probability;not null;default:0" json:"probability"`
	ExpectedCloseDate *time.Time     `gorm:"column:expected_close_date" json:"expected_close_date,omitempty"`
	Notes             string         `gorm:"column:notes;type:text" json:"notes"`
	Tags              datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Niche             string         `gorm:"column:niche;not null;default:creator;index" json:"niche"`
	ContactName       string         `gorm:"column:contact_name" json:"contact_name"`
	ContactEmail      string         `gorm:"column:contact_email" json:"contact_email"`
	ContactPhone      string         `gorm:"column:contact_phone" json:"contact_phone"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Opportunity) TableName() string { return "opportunity" }

func (o *Opportunity) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
