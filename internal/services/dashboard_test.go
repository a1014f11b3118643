package services

import (
	"testing"
	"time"

	"github.com/svitoratos/tangocrm-backend/internal/repos"
)

func TestDashboardOverview(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	oppRepo := repos.NewOpportunityRepo(db, log)
	clientRepo := repos.NewClientRepo(db, log)
	eventRepo := repos.NewCalendarEventRepo(db, log)

	oppSvc := NewOpportunityService(db, log, oppRepo)
	clientSvc := NewClientService(db, log, clientRepo, oppRepo)
	calSvc := NewCalendarService(db, log, eventRepo)
	dashSvc := NewDashboardService(db, log, oppRepo, clientRepo, eventRepo, nil, time.Minute)
	_, ctx := seedTestUser(t, db)

	seedOpp := func(title, stage string, value float64) {
		t.Helper()
		if _, err := oppSvc.Create(ctx, OpportunityInput{
			Title: title, StageID: stage, Niche: "creator", Value: value,
		}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	seedOpp("open A", "outreach", 500)
	seedOpp("open B", "negotiation", 1500)
	seedOpp("won", "paid", 2000)
	seedOpp("lost", "archived", 800)

	if _, err := clientSvc.Create(ctx, ClientInput{Name: "Acme", Niche: "creator"}); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := clientSvc.Create(ctx, ClientInput{Name: "Beta", Status: "client", Niche: "creator"}); err != nil {
		t.Fatalf("create client: %v", err)
	}

	// The seeded user lives in UTC, so "today" runs from UTC midnight.
	startOfToday := time.Now().UTC().Truncate(24 * time.Hour)
	mkEvent := func(title string, at time.Time) {
		t.Helper()
		if _, err := calSvc.Create(ctx, CalendarEventInput{
			Title: title, StartTime: at, Niche: "creator",
		}); err != nil {
			t.Fatalf("create event %s: %v", title, err)
		}
	}
	mkEvent("today", startOfToday.Add(time.Hour))
	mkEvent("in three days", startOfToday.AddDate(0, 0, 3).Add(time.Hour))
	mkEvent("next month", startOfToday.AddDate(0, 1, 0))

	metrics, err := dashSvc.Overview(ctx, "creator")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if metrics.TotalOpportunities != 4 {
		t.Errorf("total = %d, want 4", metrics.TotalOpportunities)
	}
	if metrics.ActiveDeals != 2 {
		t.Errorf("active = %d, want 2", metrics.ActiveDeals)
	}
	if metrics.PipelineValue != 2000 {
		t.Errorf("pipeline value = %v, want 2000", metrics.PipelineValue)
	}
	if metrics.WonRevenue != 2000 {
		t.Errorf("won revenue = %v, want 2000", metrics.WonRevenue)
	}
	if metrics.ValueByStage["outreach"] != 500 || metrics.ValueByStage["negotiation"] != 1500 {
		t.Errorf("value by stage = %v", metrics.ValueByStage)
	}
	if metrics.ClientsByStatus["lead"] != 1 || metrics.ClientsByStatus["client"] != 1 {
		t.Errorf("clients by status = %v", metrics.ClientsByStatus)
	}
	if metrics.EventsToday != 1 {
		t.Errorf("events today = %d, want 1", metrics.EventsToday)
	}
	if metrics.EventsThisWeek != 2 {
		t.Errorf("events this week = %d, want 2", metrics.EventsThisWeek)
	}
}
