package services

import (
	"testing"

	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

func TestClientCreateValidation(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewClientService(db, log, repos.NewClientRepo(db, log), repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	if _, err := svc.Create(ctx, ClientInput{Name: "   "}); err == nil {
		t.Error("blank name should be rejected")
	}
	if _, err := svc.Create(ctx, ClientInput{Name: "Acme", Status: "vip"}); err == nil {
		t.Error("unknown status should be rejected")
	}

	created, err := svc.Create(ctx, ClientInput{Name: "  Acme  ", Niche: "coach"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Acme" {
		t.Errorf("name = %q, want trimmed", created.Name)
	}
	if created.Status != types.ClientStatusLead {
		t.Errorf("status = %q, want default lead", created.Status)
	}
}

func TestConvertFromOpportunity(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	oppRepo := repos.NewOpportunityRepo(db, log)
	oppSvc := NewOpportunityService(db, log, oppRepo)
	clientSvc := NewClientService(db, log, repos.NewClientRepo(db, log), oppRepo)
	_, ctx := seedTestUser(t, db)

	t.Run("prefills from contact fields", func(t *testing.T) {
		opp, err := oppSvc.Create(ctx, OpportunityInput{
			Title:        "Brand deal",
			Value:        2500,
			Notes:        "signed last week",
			StageID:      "paid",
			Niche:        "creator",
			ContactName:  "Dana Reyes",
			ContactEmail: "dana@example.com",
			ContactPhone: "555-0101",
		})
		if err != nil {
			t.Fatalf("create opportunity: %v", err)
		}
		client, err := clientSvc.ConvertFromOpportunity(ctx, opp.ID, ClientInput{})
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if client.Name != "Dana Reyes" || client.Email != "dana@example.com" || client.Phone != "555-0101" {
			t.Errorf("contact fields not carried: %+v", client)
		}
		if client.Value != 2500 {
			t.Errorf("value = %v, want 2500", client.Value)
		}
		if client.Status != types.ClientStatusClient {
			t.Errorf("status = %q, want client", client.Status)
		}
		if client.Notes != "signed last week" {
			t.Errorf("notes = %q, want the plain notes text", client.Notes)
		}
	})

	t.Run("falls back to title when no contact name", func(t *testing.T) {
		opp, err := oppSvc.Create(ctx, OpportunityInput{
			Title: "Untitled collab",
			Niche: "creator",
		})
		if err != nil {
			t.Fatalf("create opportunity: %v", err)
		}
		client, err := clientSvc.ConvertFromOpportunity(ctx, opp.ID, ClientInput{})
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if client.Name != "Untitled collab" {
			t.Errorf("name = %q, want title fallback", client.Name)
		}
	})

	t.Run("podcaster guests convert with guest status", func(t *testing.T) {
		opp, err := oppSvc.Create(ctx, OpportunityInput{
			Title:       "Episode 42",
			Niche:       "podcaster",
			StageID:     "published",
			ContactName: "Sam Lee",
		})
		if err != nil {
			t.Fatalf("create opportunity: %v", err)
		}
		client, err := clientSvc.ConvertFromOpportunity(ctx, opp.ID, ClientInput{})
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if client.Status != types.ClientStatusGuest {
			t.Errorf("status = %q, want guest", client.Status)
		}
	})

	t.Run("overrides win over prefill", func(t *testing.T) {
		opp, err := oppSvc.Create(ctx, OpportunityInput{
			Title:       "Coaching package",
			Niche:       "coach",
			ContactName: "Old Name",
		})
		if err != nil {
			t.Fatalf("create opportunity: %v", err)
		}
		client, err := clientSvc.ConvertFromOpportunity(ctx, opp.ID, ClientInput{
			Name:  "New Name",
			Email: "new@example.com",
		})
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if client.Name != "New Name" || client.Email != "new@example.com" {
			t.Errorf("overrides not applied: %+v", client)
		}
	})

	t.Run("opportunity stays untouched", func(t *testing.T) {
		opp, err := oppSvc.Create(ctx, OpportunityInput{
			Title:   "Side project",
			Niche:   "freelancer",
			StageID: "completed",
		})
		if err != nil {
			t.Fatalf("create opportunity: %v", err)
		}
		if _, err := clientSvc.ConvertFromOpportunity(ctx, opp.ID, ClientInput{}); err != nil {
			t.Fatalf("convert: %v", err)
		}
		after, err := oppSvc.Get(ctx, opp.ID)
		if err != nil {
			t.Fatalf("refetch: %v", err)
		}
		if after.StageID != "completed" || after.Status != opp.Status {
			t.Errorf("opportunity changed by conversion: %+v", after)
		}
	})
}
