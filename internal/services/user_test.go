package services

import (
	"testing"

	"github.com/svitoratos/tangocrm-backend/internal/repos"
)

func TestUpdateTimezone(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewUserService(db, log, repos.NewUserRepo(db, log))
	_, ctx := seedTestUser(t, db)

	if _, err := svc.UpdateTimezone(ctx, "Mars/Olympus_Mons"); err == nil {
		t.Error("unknown timezone should be rejected")
	}

	updated, err := svc.UpdateTimezone(ctx, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Timezone != "Asia/Tokyo" {
		t.Errorf("timezone = %q", updated.Timezone)
	}

	got, err := svc.GetTimezone(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "Asia/Tokyo" {
		t.Errorf("get timezone = %q", got)
	}
}

func TestUpdatePrimaryNicheNormalizes(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewUserService(db, log, repos.NewUserRepo(db, log))
	_, ctx := seedTestUser(t, db)

	updated, err := svc.UpdatePrimaryNiche(ctx, "astronaut")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PrimaryNiche != "creator" {
		t.Errorf("niche = %q, want creator fallback", updated.PrimaryNiche)
	}

	updated, err = svc.UpdatePrimaryNiche(ctx, "freelancer")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PrimaryNiche != "freelancer" {
		t.Errorf("niche = %q", updated.PrimaryNiche)
	}
}
