package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string         `gorm:"not null;column:password" json:"-"`
	FirstName       string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName        string         `gorm:"not null;column:last_name" json:"last_name"`
	Timezone        string         `gorm:"column:timezone;default:UTC" json:"timezone"`
	PrimaryNiche    string         `gorm:"column:primary_niche;default:creator" json:"primary_niche"`
	Niches          datatypes.JSON `gorm:"column:niches;type:jsonb" json:"niches"`
	AvatarColor     string         `gorm:"column:avatar_color" json:"avatar_color"`
	AvatarPath      string         `gorm:"column:avatar_path" json:"-"`
	AvatarURL       string         `gorm:"column:avatar_url" json:"avatar_url"`
	OnboardingDone  bool           `gorm:"column:onboarding_done;default:false" json:"onboarding_done"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
