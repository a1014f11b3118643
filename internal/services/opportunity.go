package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

// OpportunityInput is the write shape shared by the create and edit paths.
// StageID is the UI stage; the service derives the database status from it
// and rewrites the notes envelope on every save.
type OpportunityInput struct {
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Value             float64                `json:"value"`
	Probability       int                    `json:"probability"`
	ExpectedCloseDate *time.Time             `json:"expected_close_date"`
	Notes             string                 `json:"notes"`
	StageID           string                 `json:"stage_id"`
	Tags              []string               `json:"tags"`
	Niche             string                 `json:"niche"`
	ContactName       string                 `json:"contact_name"`
	ContactEmail      string                 `json:"contact_email"`
	ContactPhone      string                 `json:"contact_phone"`
	CustomFields      map[string]interface{} `json:"custom_fields"`
}

// BoardOpportunity is an opportunity with its notes envelope decoded: the
// user-visible notes text, the resolved stage id, and any custom fields.
type BoardOpportunity struct {
	*types.Opportunity
	StageID      string                 `json:"stage_id"`
	PlainNotes   string                 `json:"plain_notes"`
	CustomFields map[string]interface{} `json:"custom_fields,omitempty"`
}

// StageColumn is one rendered pipeline column.
type StageColumn struct {
	Stage         pipeline.Stage     `json:"stage"`
	Opportunities []BoardOpportunity `json:"opportunities"`
}

// MoveResult is the drag-and-drop response. PromptClientConversion tells
// the UI to offer creating a linked client record; it is a side effect
// only, declining it leaves the opportunity as-is.
type MoveResult struct {
	Opportunity            BoardOpportunity `json:"opportunity"`
	PromptClientConversion bool             `json:"prompt_client_conversion"`
}

type OpportunityService interface {
	List(ctx context.Context, niche string) ([]BoardOpportunity, error)
	Board(ctx context.Context, niche string) ([]StageColumn, error)
	Get(ctx context.Context, oppID uuid.UUID) (BoardOpportunity, error)
	Create(ctx context.Context, input OpportunityInput) (BoardOpportunity, error)
	Update(ctx context.Context, oppID uuid.UUID, input OpportunityInput) (MoveResult, error)
	MoveStage(ctx context.Context, oppID uuid.UUID, stageID string) (MoveResult, error)
	Delete(ctx context.Context, oppID uuid.UUID) error
}

type opportunityService struct {
	db      *gorm.DB
	log     *logger.Logger
	oppRepo repos.OpportunityRepo
}

func NewOpportunityService(db *gorm.DB, log *logger.Logger, oppRepo repos.OpportunityRepo) OpportunityService {
	return &opportunityService{
		db:      db,
		log:     log.With("service", "OpportunityService"),
		oppRepo: oppRepo,
	}
}

func currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("request data not set in context")
	}
	return rd.UserID, nil
}

func (os *opportunityService) List(ctx context.Context, niche string) ([]BoardOpportunity, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	activeNiche := pipeline.NormalizeNiche(niche)
	opps, err := os.oppRepo.ListByNiche(ctx, nil, userID, string(activeNiche))
	if err != nil {
		return nil, fmt.Errorf("error listing opportunities: %w", err)
	}
	decoded := make([]BoardOpportunity, 0, len(opps))
	for _, opp := range opps {
		decoded = append(decoded, decodeOpportunity(opp, activeNiche))
	}
	return decoded, nil
}

func (os *opportunityService) Board(ctx context.Context, niche string) ([]StageColumn, error) {
	decoded, err := os.List(ctx, niche)
	if err != nil {
		return nil, err
	}
	activeNiche := pipeline.NormalizeNiche(niche)
	stages := pipeline.StagesFor(activeNiche)

	columns := make([]StageColumn, len(stages))
	indexByStage := make(map[string]int, len(stages))
	for i, stage := range stages {
		columns[i] = StageColumn{Stage: stage, Opportunities: []BoardOpportunity{}}
		indexByStage[stage.ID] = i
	}
	for _, bo := range decoded {
		idx, ok := indexByStage[bo.StageID]
		if !ok {
			// A stage id outside the active catalog lands on the first
			// column rather than dropping the record.
			idx = 0
			bo.StageID = stages[0].ID
		}
		columns[idx].Opportunities = append(columns[idx].Opportunities, bo)
	}
	return columns, nil
}

func (os *opportunityService) Get(ctx context.Context, oppID uuid.UUID) (BoardOpportunity, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return BoardOpportunity{}, err
	}
	opp, err := os.oppRepo.GetByID(ctx, nil, userID, oppID)
	if err != nil {
		return BoardOpportunity{}, fmt.Errorf("error fetching opportunity: %w", err)
	}
	return decodeOpportunity(opp, pipeline.NormalizeNiche(opp.Niche)), nil
}

func (os *opportunityService) Create(ctx context.Context, input OpportunityInput) (BoardOpportunity, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return BoardOpportunity{}, err
	}
	if input.Title == "" {
		return BoardOpportunity{}, fmt.Errorf("title is required")
	}
	niche := pipeline.NormalizeNiche(input.Niche)
	stageID := input.StageID
	if stageID == "" || !pipeline.IsValidStage(niche, stageID) {
		stageID = pipeline.FirstStage(niche).ID
	}

	customFields := os.refreshRevenueCache(input.Value, input.CustomFields)
	encodedNotes, err := pipeline.EncodeNotes(input.Notes, stageID, niche, customFields)
	if err != nil {
		return BoardOpportunity{}, fmt.Errorf("error encoding notes metadata: %w", err)
	}

	tags, err := marshalTags(input.Tags)
	if err != nil {
		return BoardOpportunity{}, err
	}

	opp := &types.Opportunity{
		UserID:            userID,
		Title:             input.Title,
		Description:       input.Description,
		Value:             input.Value,
		Status:            string(pipeline.StatusForStage(stageID, niche)),
		Probability:       input.Probability,
		ExpectedCloseDate: input.ExpectedCloseDate,
		Notes:             encodedNotes,
		Tags:              tags,
		Niche:             string(niche),
		ContactName:       input.ContactName,
		ContactEmail:      input.ContactEmail,
		ContactPhone:      input.ContactPhone,
	}
	created, err := os.oppRepo.Create(ctx, nil, opp)
	if err != nil {
		return BoardOpportunity{}, fmt.Errorf("error creating opportunity: %w", err)
	}
	return decodeOpportunity(created, niche), nil
}

func (os *opportunityService) Update(ctx context.Context, oppID uuid.UUID, input OpportunityInput) (MoveResult, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return MoveResult{}, err
	}
	opp, err := os.oppRepo.GetByID(ctx, nil, userID, oppID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error fetching opportunity: %w", err)
	}
	niche := pipeline.NormalizeNiche(opp.Niche)
	if input.Niche != "" {
		niche = pipeline.NormalizeNiche(input.Niche)
	}
	previous := decodeOpportunity(opp, niche)

	stageID := input.StageID
	if stageID == "" {
		stageID = previous.StageID
	}
	if !pipeline.IsValidStage(niche, stageID) {
		stageID = pipeline.FirstStage(niche).ID
	}

	customFields := input.CustomFields
	if customFields == nil {
		customFields = previous.CustomFields
	}
	customFields = os.refreshRevenueCache(input.Value, customFields)

	encodedNotes, err := pipeline.EncodeNotes(input.Notes, stageID, niche, customFields)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error encoding notes metadata: %w", err)
	}
	tags, err := marshalTags(input.Tags)
	if err != nil {
		return MoveResult{}, err
	}

	opp.Title = input.Title
	opp.Description = input.Description
	opp.Value = input.Value
	opp.Status = string(pipeline.StatusForStage(stageID, niche))
	opp.Probability = input.Probability
	opp.ExpectedCloseDate = input.ExpectedCloseDate
	opp.Notes = encodedNotes
	opp.Tags = tags
	opp.Niche = string(niche)
	opp.ContactName = input.ContactName
	opp.ContactEmail = input.ContactEmail
	opp.ContactPhone = input.ContactPhone

	updated, err := os.oppRepo.Update(ctx, nil, opp)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error updating opportunity: %w", err)
	}
	return MoveResult{
		Opportunity:            decodeOpportunity(updated, niche),
		PromptClientConversion: stageID != previous.StageID && pipeline.IsConversionStage(niche, stageID),
	}, nil
}

// MoveStage is the drag-and-drop path: only the stage changes; notes text
// and custom fields carry over from the current envelope.
func (os *opportunityService) MoveStage(ctx context.Context, oppID uuid.UUID, stageID string) (MoveResult, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return MoveResult{}, err
	}
	opp, err := os.oppRepo.GetByID(ctx, nil, userID, oppID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error fetching opportunity: %w", err)
	}
	niche := pipeline.NormalizeNiche(opp.Niche)
	if !pipeline.IsValidStage(niche, stageID) {
		return MoveResult{}, fmt.Errorf("stage %q is not in the %s pipeline", stageID, niche)
	}
	previous := decodeOpportunity(opp, niche)

	encodedNotes, err := pipeline.EncodeNotes(previous.PlainNotes, stageID, niche, previous.CustomFields)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error encoding notes metadata: %w", err)
	}
	opp.Notes = encodedNotes
	opp.Status = string(pipeline.StatusForStage(stageID, niche))

	updated, err := os.oppRepo.Update(ctx, nil, opp)
	if err != nil {
		return MoveResult{}, fmt.Errorf("error updating opportunity: %w", err)
	}
	return MoveResult{
		Opportunity:            decodeOpportunity(updated, niche),
		PromptClientConversion: stageID != previous.StageID && pipeline.IsConversionStage(niche, stageID),
	}, nil
}

func (os *opportunityService) Delete(ctx context.Context, oppID uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := os.oppRepo.Delete(ctx, nil, userID, oppID); err != nil {
		return fmt.Errorf("error deleting opportunity: %w", err)
	}
	return nil
}

// refreshRevenueCache recomputes the derived revenue fields whenever the
// custom fields carry revenue splits. The computed values are cached inside
// the custom fields themselves, alongside a lastCalculatedAt stamp.
// Validation problems are logged, never enforced.
func (os *opportunityService) refreshRevenueCache(dealValue float64, customFields map[string]interface{}) map[string]interface{} {
	splits, ok := extractRevenueSplits(customFields)
	if !ok {
		return customFields
	}
	for _, warning := range pipeline.ValidateRevenueSplits(dealValue, splits) {
		os.log.Warn("Revenue split validation", "warning", warning)
	}
	summary := pipeline.CalculateRevenueSplit(dealValue, splits)
	out := make(map[string]interface{}, len(customFields)+4)
	for k, v := range customFields {
		out[k] = v
	}
	out["calculatedGrossRevenue"] = summary.GrossRevenue
	out["calculatedSplitAmount"] = summary.TotalDeductions
	out["calculatedNetRevenue"] = summary.NetRevenue
	out["lastCalculatedAt"] = time.Now().UTC().Format(time.RFC3339)
	return out
}

// extractRevenueSplits pulls the splits array out of the loosely typed
// custom fields map. Anything that doesn't round-trip through JSON into
// the expected shape means "no splits".
func extractRevenueSplits(customFields map[string]interface{}) ([]pipeline.RevenueSplit, bool) {
	if customFields == nil {
		return nil, false
	}
	rawSplits, ok := customFields["revenueSplits"]
	if !ok {
		return nil, false
	}
	raw, err := json.Marshal(rawSplits)
	if err != nil {
		return nil, false
	}
	var splits []pipeline.RevenueSplit
	if err := json.Unmarshal(raw, &splits); err != nil {
		return nil, false
	}
	return splits, true
}

// decodeOpportunity reconstructs the UI view of a record: decode the notes
// envelope under the active niche, fall back to the lossy status mapping
// when no envelope survives.
func decodeOpportunity(opp *types.Opportunity, activeNiche pipeline.Niche) BoardOpportunity {
	meta := pipeline.DecodeNotes(opp.Notes, activeNiche)
	stageID := meta.StageID
	if stageID == "" {
		stageID = pipeline.StageIDForStatus(pipeline.Status(opp.Status), activeNiche)
	}
	return BoardOpportunity{
		Opportunity:  opp,
		StageID:      stageID,
		PlainNotes:   meta.Notes,
		CustomFields: meta.CustomFields,
	}
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("error encoding tags: %w", err)
	}
	return datatypes.JSON(raw), nil
}
