package pipeline

// Niche identifies which vertical a record belongs to. Each niche carries its
// own ordered pipeline stage catalog and its own status mapping tables.
type Niche string

const (
	NicheCreator    Niche = "creator"
	NicheCoach      Niche = "coach"
	NichePodcaster  Niche = "podcaster"
	NicheFreelancer Niche = "freelancer"
)

// DefaultNiche is the fallback for unknown or missing niche values.
const DefaultNiche = NicheCreator

// Stage is one column of a niche's pipeline board. Catalog entries are
// static and never persisted; opportunities reference them by stage id.
type Stage struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Order int    `json:"order" yaml:"order"`
}

var stageCatalogs = map[Niche][]Stage{
	NicheCreator: {
		{ID: "outreach", Name: "Outreach", Color: "#8B5CF6", Order: 1},
		{ID: "awaiting", Name: "Awaiting Response", Color: "#6366F1", Order: 2},
		{ID: "conversation", Name: "In Conversation", Color: "#3B82F6", Order: 3},
		{ID: "negotiation", Name: "Negotiation", Color: "#F59E0B", Order: 4},
		{ID: "contract", Name: "Contract Sent", Color: "#F97316", Order: 5},
		{ID: "paid", Name: "Paid", Color: "#10B981", Order: 6},
		{ID: "archived", Name: "Archived", Color: "#6B7280", Order: 7},
	},
	NicheCoach: {
		{ID: "new-lead", Name: "New Lead", Color: "#8B5CF6", Order: 1},
		{ID: "discovery-scheduled", Name: "Discovery Call Scheduled", Color: "#6366F1", Order: 2},
		{ID: "discovery-completed", Name: "Discovery Call Completed", Color: "#3B82F6", Order: 3},
		{ID: "proposal-sent", Name: "Proposal Sent", Color: "#F59E0B", Order: 4},
		{ID: "follow-up", Name: "Follow Up", Color: "#F97316", Order: 5},
		{ID: "active", Name: "Active Client", Color: "#10B981", Order: 6},
		{ID: "archived", Name: "Archived", Color: "#6B7280", Order: 7},
	},
	NichePodcaster: {
		{ID: "guest-outreach", Name: "Guest Outreach", Color: "#8B5CF6", Order: 1},
		{ID: "topics-discussed", Name: "Topics Discussed", Color: "#6366F1", Order: 2},
		{ID: "scheduled", Name: "Scheduled", Color: "#3B82F6", Order: 3},
		{ID: "recording", Name: "Recording", Color: "#F59E0B", Order: 4},
		{ID: "recorded", Name: "Recorded", Color: "#F97316", Order: 5},
		{ID: "published", Name: "Published", Color: "#10B981", Order: 6},
		{ID: "archived", Name: "Archived", Color: "#6B7280", Order: 7},
	},
	NicheFreelancer: {
		{ID: "new-inquiry", Name: "New Inquiry", Color: "#8B5CF6", Order: 1},
		{ID: "discovery", Name: "Discovery", Color: "#6366F1", Order: 2},
		{ID: "proposal-sent", Name: "Proposal Sent", Color: "#3B82F6", Order: 3},
		{ID: "negotiation", Name: "Negotiation", Color: "#F59E0B", Order: 4},
		{ID: "contract-signed", Name: "Contract Signed", Color: "#F97316", Order: 5},
		{ID: "completed", Name: "Completed", Color: "#10B981", Order: 6},
		{ID: "archived", Name: "Archived", Color: "#6B7280", Order: 7},
	},
}

// conversionStages are the stage ids that should prompt the user to create a
// linked client record when an opportunity lands on them. Declining the
// prompt changes nothing; this is a notification side effect only.
var conversionStages = map[Niche]map[string]bool{
	NicheCreator:    {"paid": true},
	NicheCoach:      {"active": true},
	NichePodcaster:  {"published": true},
	NicheFreelancer: {"completed": true},
}

// NormalizeNiche maps arbitrary input to a known niche, falling back to the
// creator niche for anything unrecognized.
func NormalizeNiche(raw string) Niche {
	switch Niche(raw) {
	case NicheCreator, NicheCoach, NichePodcaster, NicheFreelancer:
		return Niche(raw)
	default:
		return DefaultNiche
	}
}

// Niches returns all known niches in a stable order.
func Niches() []Niche {
	return []Niche{NicheCreator, NicheCoach, NichePodcaster, NicheFreelancer}
}

// StagesFor returns the ordered stage catalog for a niche. Unknown niches
// get the creator catalog.
func StagesFor(niche Niche) []Stage {
	stages, ok := stageCatalogs[niche]
	if !ok {
		stages = stageCatalogs[DefaultNiche]
	}
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// FirstStage returns the leftmost stage of a niche's catalog. Opportunities
// with no decodable stage land here rather than being dropped.
func FirstStage(niche Niche) Stage {
	return StagesFor(niche)[0]
}

// IsValidStage reports whether stageID exists in the niche's catalog.
func IsValidStage(niche Niche, stageID string) bool {
	for _, s := range StagesFor(niche) {
		if s.ID == stageID {
			return true
		}
	}
	return false
}

// IsConversionStage reports whether landing on stageID should prompt the
// user to create a linked client record.
func IsConversionStage(niche Niche, stageID string) bool {
	set, ok := conversionStages[niche]
	if !ok {
		set = conversionStages[DefaultNiche]
	}
	return set[stageID]
}
