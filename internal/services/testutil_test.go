package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

// unique in-memory DB per test name to avoid leakage via shared cache
func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Opportunity{},
		&types.Client{},
		&types.CalendarEvent{},
		&types.ContentItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func seedTestUser(t *testing.T, db *gorm.DB) (*types.User, context.Context) {
	t.Helper()
	user := &types.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Password:     "hash",
		FirstName:    "Test",
		LastName:     "User",
		Timezone:     "UTC",
		PrimaryNiche: "creator",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   user.ID,
		Email:    user.Email,
		Timezone: user.Timezone,
	})
	return user, ctx
}
