package services

import (
	"testing"

	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

func TestOpportunityCreateDefaultsToFirstStage(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	cases := []struct {
		name      string
		stageID   string
		niche     string
		wantStage string
	}{
		{name: "empty stage", stageID: "", niche: "creator", wantStage: "outreach"},
		{name: "stage from another niche", stageID: "new-lead", niche: "creator", wantStage: "outreach"},
		{name: "valid stage kept", stageID: "negotiation", niche: "creator", wantStage: "negotiation"},
		{name: "unknown niche falls back to creator", stageID: "", niche: "florist", wantStage: "outreach"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := svc.Create(ctx, OpportunityInput{
				Title:   "Brand deal",
				Value:   1500,
				StageID: tc.stageID,
				Niche:   tc.niche,
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if created.StageID != tc.wantStage {
				t.Errorf("stage = %q, want %q", created.StageID, tc.wantStage)
			}
			wantStatus := string(pipeline.StatusForStage(tc.wantStage, pipeline.NormalizeNiche(tc.niche)))
			if created.Status != wantStatus {
				t.Errorf("status = %q, want %q", created.Status, wantStatus)
			}
		})
	}
}

func TestOpportunityNotesSurviveRoundTrip(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	created, err := svc.Create(ctx, OpportunityInput{
		Title:   "Sponsorship",
		Notes:   "waiting on their media kit",
		StageID: "conversation",
		Niche:   "creator",
		CustomFields: map[string]interface{}{
			"platform": "youtube",
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.PlainNotes != "waiting on their media kit" {
		t.Errorf("plain notes = %q", fetched.PlainNotes)
	}
	if fetched.StageID != "conversation" {
		t.Errorf("stage = %q, want conversation", fetched.StageID)
	}
	if fetched.CustomFields["platform"] != "youtube" {
		t.Errorf("custom fields = %v", fetched.CustomFields)
	}
}

func TestOpportunityBoardGroupsByStage(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	user, ctx := seedTestUser(t, db)

	if _, err := svc.Create(ctx, OpportunityInput{Title: "A", StageID: "outreach", Niche: "creator"}); err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := svc.Create(ctx, OpportunityInput{Title: "B", StageID: "negotiation", Niche: "creator"}); err != nil {
		t.Fatalf("create B: %v", err)
	}
	// Legacy record: plain-text notes, no envelope. The stage comes from the
	// lossy status mapping instead.
	legacy := &types.Opportunity{
		UserID: user.ID,
		Title:  "C",
		Status: "won",
		Notes:  "imported from a spreadsheet",
		Niche:  "creator",
	}
	if err := db.Create(legacy).Error; err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	columns, err := svc.Board(ctx, "creator")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(columns) != 7 {
		t.Fatalf("columns = %d, want 7", len(columns))
	}
	byStage := map[string][]BoardOpportunity{}
	for _, col := range columns {
		byStage[col.Stage.ID] = col.Opportunities
	}
	if len(byStage["outreach"]) != 1 || byStage["outreach"][0].Title != "A" {
		t.Errorf("outreach column = %v", byStage["outreach"])
	}
	if len(byStage["negotiation"]) != 1 || byStage["negotiation"][0].Title != "B" {
		t.Errorf("negotiation column = %v", byStage["negotiation"])
	}
	// creator status "won" maps back to the paid stage
	if len(byStage["paid"]) != 1 || byStage["paid"][0].Title != "C" {
		t.Errorf("paid column = %v", byStage["paid"])
	}
	if byStage["paid"][0].PlainNotes != "imported from a spreadsheet" {
		t.Errorf("legacy notes = %q", byStage["paid"][0].PlainNotes)
	}

	total := 0
	for _, col := range columns {
		total += len(col.Opportunities)
	}
	if total != 3 {
		t.Errorf("board holds %d opportunities, want 3", total)
	}
}

func TestOpportunityBoardUnknownStageLandsOnFirstColumn(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	user, ctx := seedTestUser(t, db)

	// Envelope carries a stage id that is not part of the creator catalog.
	stray := &types.Opportunity{
		UserID: user.ID,
		Title:  "Stray",
		Status: "prospecting",
		Notes:  `{"notes":"hello","stageId":"recording","niche":"creator"}`,
		Niche:  "creator",
	}
	if err := db.Create(stray).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	columns, err := svc.Board(ctx, "creator")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	first := columns[0]
	if len(first.Opportunities) != 1 {
		t.Fatalf("first column holds %d, want 1", len(first.Opportunities))
	}
	if got := first.Opportunities[0].StageID; got != first.Stage.ID {
		t.Errorf("stage rewritten to %q, want %q", got, first.Stage.ID)
	}
}

func TestOpportunityMoveStage(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	created, err := svc.Create(ctx, OpportunityInput{
		Title:        "Retainer",
		Notes:        "monthly retainer deal",
		StageID:      "negotiation",
		Niche:        "creator",
		CustomFields: map[string]interface{}{"rate": "monthly"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.MoveStage(ctx, created.ID, "recording"); err == nil {
		t.Fatal("expected error for stage outside the creator pipeline")
	}

	moved, err := svc.MoveStage(ctx, created.ID, "paid")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !moved.PromptClientConversion {
		t.Error("landing on paid should prompt client conversion")
	}
	if moved.Opportunity.StageID != "paid" {
		t.Errorf("stage = %q, want paid", moved.Opportunity.StageID)
	}
	if moved.Opportunity.Status != "won" {
		t.Errorf("status = %q, want won", moved.Opportunity.Status)
	}
	if moved.Opportunity.PlainNotes != "monthly retainer deal" {
		t.Errorf("notes lost on move: %q", moved.Opportunity.PlainNotes)
	}
	if moved.Opportunity.CustomFields["rate"] != "monthly" {
		t.Errorf("custom fields lost on move: %v", moved.Opportunity.CustomFields)
	}

	// Dropping on the same stage again does not re-prompt.
	again, err := svc.MoveStage(ctx, created.ID, "paid")
	if err != nil {
		t.Fatalf("move again: %v", err)
	}
	if again.PromptClientConversion {
		t.Error("unchanged stage should not prompt")
	}
}

func TestOpportunityUpdatePreservesStageAndCustomFields(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	created, err := svc.Create(ctx, OpportunityInput{
		Title:        "Workshop",
		StageID:      "conversation",
		Niche:        "creator",
		CustomFields: map[string]interface{}{"format": "live"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.Update(ctx, created.ID, OpportunityInput{
		Title: "Workshop (renamed)",
		Value: 900,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Opportunity.StageID != "conversation" {
		t.Errorf("stage = %q, want conversation kept", res.Opportunity.StageID)
	}
	if res.Opportunity.CustomFields["format"] != "live" {
		t.Errorf("custom fields = %v, want format kept", res.Opportunity.CustomFields)
	}
	if res.PromptClientConversion {
		t.Error("no stage change, no prompt")
	}
}

func TestOpportunityRevenueCacheOnCreate(t *testing.T) {
	db := newServiceTestDB(t)
	log := newTestLogger(t)
	svc := NewOpportunityService(db, log, repos.NewOpportunityRepo(db, log))
	_, ctx := seedTestUser(t, db)

	created, err := svc.Create(ctx, OpportunityInput{
		Title:   "Sponsored series",
		Value:   1000,
		StageID: "contract",
		Niche:   "creator",
		CustomFields: map[string]interface{}{
			"revenueSplits": []map[string]interface{}{
				{"amount": 10, "type": "%", "with": "manager"},
				{"amount": 200, "type": "$", "with": "editor"},
			},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	cf := fetched.CustomFields
	if got, ok := cf["calculatedGrossRevenue"].(float64); !ok || got != 1000 {
		t.Errorf("gross = %v", cf["calculatedGrossRevenue"])
	}
	if got, ok := cf["calculatedSplitAmount"].(float64); !ok || got != 300 {
		t.Errorf("deductions = %v", cf["calculatedSplitAmount"])
	}
	if got, ok := cf["calculatedNetRevenue"].(float64); !ok || got != 700 {
		t.Errorf("net = %v", cf["calculatedNetRevenue"])
	}
	if _, ok := cf["lastCalculatedAt"].(string); !ok {
		t.Errorf("lastCalculatedAt missing: %v", cf["lastCalculatedAt"])
	}
}
