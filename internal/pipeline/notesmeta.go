package pipeline

import (
	"encoding/json"
	"strings"
)

// NotesMeta is the JSON envelope smuggled into the opportunity's free-text
// notes column. The database schema only knows the 6-value status enum, so
// the precise stage id and any niche-specific custom fields ride along here.
type NotesMeta struct {
	Notes        string                 `json:"notes"`
	StageID      string                 `json:"stageId,omitempty"`
	Niche        Niche                  `json:"niche,omitempty"`
	CustomFields map[string]interface{} `json:"customFields,omitempty"`
}

// EncodeNotes builds the envelope that gets written into the notes column.
func EncodeNotes(notes, stageID string, niche Niche, customFields map[string]interface{}) (string, error) {
	raw, err := json.Marshal(NotesMeta{
		Notes:        notes,
		StageID:      stageID,
		Niche:        niche,
		CustomFields: customFields,
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeNotes recovers the envelope from a raw notes value. It is total:
// it never fails, regardless of input. Plain text, malformed JSON, JSON of
// the wrong shape, and envelopes written under a different niche all
// degrade to treating the whole string as the user-visible notes, leaving
// StageID and CustomFields empty so the caller falls back to the lossy
// status -> stage mapping. Legacy records written before the envelope
// existed rely on this.
func DecodeNotes(raw string, activeNiche Niche) NotesMeta {
	fallback := NotesMeta{Notes: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !strings.HasPrefix(trimmed, "{") {
		return fallback
	}

	var meta NotesMeta
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return fallback
	}
	if meta.Niche != activeNiche {
		return fallback
	}
	return meta
}
