package pipeline

// Status is the 6-value enum the database understands. It is deliberately
// smaller than the per-niche stage catalogs, so the stage id -> status
// mapping is lossy: the precise stage id is carried out-of-band in the
// notes metadata envelope (see notesmeta.go).
type Status string

const (
	StatusProspecting   Status = "prospecting"
	StatusQualification Status = "qualification"
	StatusProposal      Status = "proposal"
	StatusNegotiation   Status = "negotiation"
	StatusWon           Status = "won"
	StatusLost          Status = "lost"
)

// stageToStatus is the total inverse mapping: every stage id in every
// niche's catalog must appear here. Collisions are expected (multiple
// stages compress into one status).
var stageToStatus = map[Niche]map[string]Status{
	NicheCreator: {
		"outreach":     StatusProspecting,
		"awaiting":     StatusQualification,
		"conversation": StatusProposal,
		"negotiation":  StatusNegotiation,
		"contract":     StatusNegotiation,
		"paid":         StatusWon,
		"archived":     StatusLost,
	},
	NicheCoach: {
		"new-lead":            StatusProspecting,
		"discovery-scheduled": StatusQualification,
		"discovery-completed": StatusQualification,
		"proposal-sent":       StatusProposal,
		"follow-up":           StatusNegotiation,
		"active":              StatusWon,
		"archived":            StatusLost,
	},
	NichePodcaster: {
		"guest-outreach":   StatusProspecting,
		"topics-discussed": StatusQualification,
		"scheduled":        StatusProposal,
		"recording":        StatusNegotiation,
		"recorded":         StatusWon,
		"published":        StatusWon,
		"archived":         StatusLost,
	},
	NicheFreelancer: {
		"new-inquiry":     StatusProspecting,
		"discovery":       StatusQualification,
		"proposal-sent":   StatusProposal,
		"negotiation":     StatusNegotiation,
		"contract-signed": StatusNegotiation,
		"completed":       StatusWon,
		"archived":        StatusLost,
	},
}

// statusToStage is the lossy forward mapping used when no notes metadata
// survives. Where several stages share a status, the table picks one
// canonical stage: creator contract collapses to negotiation, coach
// discovery-completed to discovery-scheduled, podcaster published to
// recorded, freelancer contract-signed to negotiation.
var statusToStage = map[Niche]map[Status]string{
	NicheCreator: {
		StatusProspecting:   "outreach",
		StatusQualification: "awaiting",
		StatusProposal:      "conversation",
		StatusNegotiation:   "negotiation",
		StatusWon:           "paid",
		StatusLost:          "archived",
	},
	NicheCoach: {
		StatusProspecting:   "new-lead",
		StatusQualification: "discovery-scheduled",
		StatusProposal:      "proposal-sent",
		StatusNegotiation:   "follow-up",
		StatusWon:           "active",
		StatusLost:          "archived",
	},
	NichePodcaster: {
		StatusProspecting:   "guest-outreach",
		StatusQualification: "topics-discussed",
		StatusProposal:      "scheduled",
		StatusNegotiation:   "recording",
		StatusWon:           "recorded",
		StatusLost:          "archived",
	},
	NicheFreelancer: {
		StatusProspecting:   "new-inquiry",
		StatusQualification: "discovery",
		StatusProposal:      "proposal-sent",
		StatusNegotiation:   "negotiation",
		StatusWon:           "completed",
		StatusLost:          "archived",
	},
}

// IsValidStatus reports whether s is one of the 6 database enum values.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusProspecting, StatusQualification, StatusProposal, StatusNegotiation, StatusWon, StatusLost:
		return true
	}
	return false
}

// StageIDForStatus maps a database status to a stage id in the niche's
// catalog. Unknown statuses and unknown niches fall back to the niche's
// first stage and the creator tables respectively.
func StageIDForStatus(status Status, niche Niche) string {
	table, ok := statusToStage[niche]
	if !ok {
		niche = DefaultNiche
		table = statusToStage[niche]
	}
	if stageID, ok := table[status]; ok {
		return stageID
	}
	return FirstStage(niche).ID
}

// StatusForStage maps a stage id back to a database status. Total: unknown
// stage ids default to prospecting, unknown niches to the creator table.
func StatusForStage(stageID string, niche Niche) Status {
	table, ok := stageToStatus[niche]
	if !ok {
		table = stageToStatus[DefaultNiche]
	}
	if status, ok := table[stageID]; ok {
		return status
	}
	return StatusProspecting
}
