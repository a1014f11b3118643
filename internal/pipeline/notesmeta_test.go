package pipeline

import (
	"testing"
)

func TestDecodeNotesRoundTrip(t *testing.T) {
	cases := []struct {
		name         string
		notes        string
		stageID      string
		niche        Niche
		customFields map[string]interface{}
	}{
		{
			name:    "plain_stage_only",
			notes:   "met at the conference",
			stageID: "contract",
			niche:   NicheCreator,
		},
		{
			name:    "empty_notes",
			notes:   "",
			stageID: "discovery-scheduled",
			niche:   NicheCoach,
		},
		{
			name:    "with_custom_fields",
			notes:   "pilot episode",
			stageID: "scheduled",
			niche:   NichePodcaster,
			customFields: map[string]interface{}{
				"episodeNumber": "42",
				"guestEmail":    "guest@example.com",
			},
		},
		{
			name:    "notes_that_look_like_json",
			notes:   `{"not": "an envelope"}`,
			stageID: "negotiation",
			niche:   NicheFreelancer,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeNotes(tc.notes, tc.stageID, tc.niche, tc.customFields)
			if err != nil {
				t.Fatalf("EncodeNotes: %v", err)
			}
			got := DecodeNotes(encoded, tc.niche)
			if got.Notes != tc.notes {
				t.Errorf("notes = %q, want %q", got.Notes, tc.notes)
			}
			if got.StageID != tc.stageID {
				t.Errorf("stageID = %q, want %q", got.StageID, tc.stageID)
			}
			if len(got.CustomFields) != len(tc.customFields) {
				t.Errorf("customFields = %v, want %v", got.CustomFields, tc.customFields)
			}
			for k, want := range tc.customFields {
				if got.CustomFields[k] != want {
					t.Errorf("customFields[%q] = %v, want %v", k, got.CustomFields[k], want)
				}
			}
		})
	}
}

func TestDecodeNotesNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"{",
		`{"foo": 1}`,
		`{"niche": 5}`,
		`"just a json string"`,
		"[1,2,3]",
		"null",
		"   {malformed",
		"{}",
	}
	for _, raw := range inputs {
		got := DecodeNotes(raw, NicheCreator)
		if got.Notes != raw {
			t.Errorf("DecodeNotes(%q).Notes = %q, want the raw input back", raw, got.Notes)
		}
		if got.StageID != "" {
			t.Errorf("DecodeNotes(%q).StageID = %q, want empty", raw, got.StageID)
		}
		if got.CustomFields != nil {
			t.Errorf("DecodeNotes(%q).CustomFields = %v, want nil", raw, got.CustomFields)
		}
	}
}

func TestDecodeNotesNicheMismatch(t *testing.T) {
	encoded, err := EncodeNotes("creator note", "paid", NicheCreator, nil)
	if err != nil {
		t.Fatalf("EncodeNotes: %v", err)
	}
	got := DecodeNotes(encoded, NicheCoach)
	if got.Notes != encoded {
		t.Errorf("mismatched niche should return the raw string as notes, got %q", got.Notes)
	}
	if got.StageID != "" {
		t.Errorf("mismatched niche should not expose a stage id, got %q", got.StageID)
	}
}
