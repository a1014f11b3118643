package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client statuses. Guests exist for podcasters; everyone else moves between
// lead, client, and inactive.
const (
	ClientStatusLead     = "lead"
	ClientStatusClient   = "client"
	ClientStatusGuest    = "guest"
	ClientStatusInactive = "inactive"
)

// Client is a contact record. It is independent of Opportunity: the only
// link is the user-driven "convert opportunity to client" action, which
// pre-fills a new client from an opportunity's contact fields. No foreign
// key is enforced.
type Client struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Email     string         `gorm:"column:email" json:"email"`
	Phone     string         `gorm:"column:phone" json:"phone"`
	Company   string         `gorm:"column:company" json:"company"`
	Address   string         `gorm:"column:address" json:"address"`
	Value     float64        `gorm:"column:value;not null;default:0" json:"value"`
	Status    string         `gorm:"column:status;not null;default:lead;index" json:"status"`
	Notes     string         `gorm:"column:notes;type:text" json:"notes"`
	Niche     string         `gorm:"column:niche;not null;default:creator;index" json:"niche"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Client) TableName() string { return "client" }

// IsValidClientStatus reports whether s is a known client status.
func IsValidClientStatus(s string) bool {
	switch s {
	case ClientStatusLead, ClientStatusClient, ClientStatusGuest, ClientStatusInactive:
		return true
	}
	return false
}

func (cl *Client) BeforeCreate(*gorm.DB) error {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return nil
}
