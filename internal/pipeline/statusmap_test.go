package pipeline

import "testing"

func TestStatusMappingTotality(t *testing.T) {
	for _, niche := range Niches() {
		for _, stage := range StagesFor(niche) {
			status := StatusForStage(stage.ID, niche)
			if !IsValidStatus(status) {
				t.Errorf("StatusForStage(%q, %q) = %q, not a valid database status", stage.ID, niche, status)
			}
			roundTrip := StageIDForStatus(status, niche)
			if !IsValidStage(niche, roundTrip) {
				t.Errorf("StageIDForStatus(%q, %q) = %q, not in the %q catalog", status, niche, roundTrip, niche)
			}
		}
	}
}

// The stage -> status compression is lossy: these stages collapse into a
// sibling on the way back. The forward mapping picks one canonical stage
// per status; the notes envelope exists to preserve the original.
func TestStatusMappingKnownCollisions(t *testing.T) {
	cases := []struct {
		niche        Niche
		stageID      string
		collapsesTo  string
	}{
		{NicheCreator, "contract", "negotiation"},
		{NicheCoach, "discovery-completed", "discovery-scheduled"},
		{NichePodcaster, "published", "recorded"},
		{NicheFreelancer, "contract-signed", "negotiation"},
	}
	for _, tc := range cases {
		status := StatusForStage(tc.stageID, tc.niche)
		got := StageIDForStatus(status, tc.niche)
		if got != tc.collapsesTo {
			t.Errorf("%s/%s: round trip through %q gave %q, want collapse to %q", tc.niche, tc.stageID, status, got, tc.collapsesTo)
		}
	}
}

func TestStatusMappingFallbacks(t *testing.T) {
	if got := StageIDForStatus("bogus", NicheCreator); got != "outreach" {
		t.Errorf("unknown status should land on the first creator stage, got %q", got)
	}
	if got := StageIDForStatus(StatusWon, "unknown-niche"); got != "paid" {
		t.Errorf("unknown niche should use the creator table, got %q", got)
	}
	if got := StatusForStage("no-such-stage", NicheCoach); got != StatusProspecting {
		t.Errorf("unknown stage id should default to prospecting, got %q", got)
	}
	if got := StatusForStage("paid", "unknown-niche"); got != StatusWon {
		t.Errorf("unknown niche should use the creator table, got %q", got)
	}
}

func TestPodcasterWonCanonicalStage(t *testing.T) {
	// Both recorded and published write won; reads resolve won to recorded.
	if StatusForStage("recorded", NichePodcaster) != StatusWon {
		t.Error("recorded should map to won")
	}
	if StatusForStage("published", NichePodcaster) != StatusWon {
		t.Error("published should map to won")
	}
	if got := StageIDForStatus(StatusWon, NichePodcaster); got != "recorded" {
		t.Errorf("won should resolve to recorded, got %q", got)
	}
}
