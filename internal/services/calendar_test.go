package services

import (
	"testing"
	"time"

	"github.com/svitoratos/tangocrm-backend/internal/repos"
)

func TestCalendarCreateDefaults(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewCalendarService(db, log, repos.NewCalendarEventRepo(db, log))
	_, ctx := seedTestUser(t, db)

	start := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, CalendarEventInput{
		Title:     "Discovery call",
		StartTime: start,
		Niche:     "coach",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.EndTime.Equal(start.Add(time.Hour)) {
		t.Errorf("end = %v, want start + 1h", created.EndTime)
	}

	if _, err := svc.Create(ctx, CalendarEventInput{
		Title:     "Backwards",
		StartTime: start,
		EndTime:   start.Add(-time.Minute),
	}); err == nil {
		t.Error("end before start should be rejected")
	}
	if _, err := svc.Create(ctx, CalendarEventInput{Title: "No start"}); err == nil {
		t.Error("missing start_time should be rejected")
	}
}

// The day filter follows the user's timezone, not UTC. An event at 23:00
// UTC on March 10 is already March 11 in Tokyo.
func TestCalendarListDayUsesLocalMidnight(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewCalendarService(db, log, repos.NewCalendarEventRepo(db, log))
	_, ctx := seedTestUser(t, db)

	mk := func(title string, at time.Time) {
		t.Helper()
		if _, err := svc.Create(ctx, CalendarEventInput{
			Title:     title,
			StartTime: at,
			Niche:     "podcaster",
		}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mk("late on the 10th UTC", time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))
	mk("morning of the 11th UTC", time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))
	mk("late on the 11th UTC", time.Date(2025, 3, 11, 16, 0, 0, 0, time.UTC))

	// March 11 in Tokyo runs from 2025-03-10T15:00Z to 2025-03-11T15:00Z.
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	events, err := svc.ListDay(ctx, "podcaster", day, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Title == "late on the 11th UTC" {
			t.Errorf("event outside the Tokyo day window returned: %s", ev.Title)
		}
	}

	// In UTC the same calendar day picks up the two events on the 11th.
	events, err = svc.ListDay(ctx, "podcaster", day, "UTC")
	if err != nil {
		t.Fatalf("list day utc: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("utc events = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Title == "late on the 10th UTC" {
			t.Errorf("event outside the UTC day window returned: %s", ev.Title)
		}
	}
}
