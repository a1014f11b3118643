package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type CalendarEventInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Type          string     `json:"type"`
	Color         string     `json:"color"`
	Status        string     `json:"status"`
	Niche         string     `json:"niche"`
	ClientID      *uuid.UUID `json:"client_id"`
	OpportunityID *uuid.UUID `json:"opportunity_id"`
}

type CalendarService interface {
	List(ctx context.Context, niche string) ([]*types.CalendarEvent, error)
	ListDay(ctx context.Context, niche string, day time.Time, timezone string) ([]*types.CalendarEvent, error)
	Create(ctx context.Context, input CalendarEventInput) (*types.CalendarEvent, error)
	Update(ctx context.Context, eventID uuid.UUID, input CalendarEventInput) (*types.CalendarEvent, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type calendarService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.CalendarEventRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, eventRepo repos.CalendarEventRepo) CalendarService {
	return &calendarService{db: db, log: log.With("service", "CalendarService"), eventRepo: eventRepo}
}

func (cs *calendarService) List(ctx context.Context, niche string) ([]*types.CalendarEvent, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if niche != "" {
		niche = string(pipeline.NormalizeNiche(niche))
	}
	events, err := cs.eventRepo.ListByNiche(ctx, nil, userID, niche)
	if err != nil {
		return nil, fmt.Errorf("error listing calendar events: %w", err)
	}
	return events, nil
}

// ListDay returns events on a calendar day as the user sees it: the day
// boundary is local midnight in their timezone, translated to a UTC window
// for the query.
func (cs *calendarService) ListDay(ctx context.Context, niche string, day time.Time, timezone string) ([]*types.CalendarEvent, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	loc := pipeline.ResolveTimezone(timezone)
	from := pipeline.DayFromUTC(day, loc)
	to := from.AddDate(0, 0, 1)
	if niche != "" {
		niche = string(pipeline.NormalizeNiche(niche))
	}
	events, err := cs.eventRepo.ListBetween(ctx, nil, userID, niche, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("error listing calendar events: %w", err)
	}
	return events, nil
}

func (cs *calendarService) Create(ctx context.Context, input CalendarEventInput) (*types.CalendarEvent, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.StartTime.IsZero() {
		return nil, fmt.Errorf("start_time is required")
	}
	if input.EndTime.IsZero() {
		input.EndTime = input.StartTime.Add(time.Hour)
	}
	if input.EndTime.Before(input.StartTime) {
		return nil, fmt.Errorf("end_time is before start_time")
	}
	event := &types.CalendarEvent{
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		StartTime:     input.StartTime.UTC(),
		EndTime:       input.EndTime.UTC(),
		Type:          input.Type,
		Color:         input.Color,
		Status:        input.Status,
		Niche:         string(pipeline.NormalizeNiche(input.Niche)),
		ClientID:      input.ClientID,
		OpportunityID: input.OpportunityID,
	}
	created, err := cs.eventRepo.Create(ctx, nil, event)
	if err != nil {
		return nil, fmt.Errorf("error creating calendar event: %w", err)
	}
	return created, nil
}

func (cs *calendarService) Update(ctx context.Context, eventID uuid.UUID, input CalendarEventInput) (*types.CalendarEvent, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	event, err := cs.eventRepo.GetByID(ctx, nil, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("error fetching calendar event: %w", err)
	}
	if input.Title != "" {
		event.Title = input.Title
	}
	event.Description = input.Description
	if !input.StartTime.IsZero() {
		event.StartTime = input.StartTime.UTC()
	}
	if !input.EndTime.IsZero() {
		event.EndTime = input.EndTime.UTC()
	}
	if event.EndTime.Before(event.StartTime) {
		return nil, fmt.Errorf("end_time is before start_time")
	}
	if input.Type != "" {
		event.Type = input.Type
	}
	if input.Color != "" {
		event.Color = input.Color
	}
	if input.Status != "" {
		event.Status = input.Status
	}
	if input.Niche != "" {
		event.Niche = string(pipeline.NormalizeNiche(input.Niche))
	}
	event.ClientID = input.ClientID
	event.OpportunityID = input.OpportunityID
	updated, err := cs.eventRepo.Update(ctx, nil, event)
	if err != nil {
		return nil, fmt.Errorf("error updating calendar event: %w", err)
	}
	return updated, nil
}

func (cs *calendarService) Delete(ctx context.Context, eventID uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := cs.eventRepo.Delete(ctx, nil, userID, eventID); err != nil {
		return fmt.Errorf("error deleting calendar event: %w", err)
	}
	return nil
}
