package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ClientInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company string  `json:"company"`
	Address string  `json:"address"`
	Value   float64 `json:"value"`
	Status  string  `json:"status"`
	Notes   string  `json:"notes"`
	Niche   string  `json:"niche"`
}

type ClientService interface {
	List(ctx context.Context, niche string) ([]*types.Client, error)
	Get(ctx context.Context, clientID uuid.UUID) (*types.Client, error)
	Create(ctx context.Context, input ClientInput) (*types.Client, error)
	Update(ctx context.Context, clientID uuid.UUID, input ClientInput) (*types.Client, error)
	Delete(ctx context.Context, clientID uuid.UUID) error
	ConvertFromOpportunity(ctx context.Context, oppID uuid.UUID, overrides ClientInput) (*types.Client, error)
}

type clientService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	oppRepo    repos.OpportunityRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo, oppRepo repos.OpportunityRepo) ClientService {
	return &clientService{
		db:         db,
		log:        log.With("service", "ClientService"),
		clientRepo: clientRepo,
		oppRepo:    oppRepo,
	}
}

func (cs *clientService) List(ctx context.Context, niche string) ([]*types.Client, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if niche != "" {
		niche = string(pipeline.NormalizeNiche(niche))
	}
	clients, err := cs.clientRepo.ListByNiche(ctx, nil, userID, niche)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	return clients, nil
}

func (cs *clientService) Get(ctx context.Context, clientID uuid.UUID) (*types.Client, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	client, err := cs.clientRepo.GetByID(ctx, nil, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("error fetching client: %w", err)
	}
	return client, nil
}

func (cs *clientService) Create(ctx context.Context, input ClientInput) (*types.Client, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	status := input.Status
	if status == "" {
		status = types.ClientStatusLead
	}
	if !types.IsValidClientStatus(status) {
		return nil, fmt.Errorf("unknown client status %q", status)
	}
	client := &types.Client{
		UserID:  userID,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Company: input.Company,
		Address: input.Address,
		Value:   input.Value,
		Status:  status,
		Notes:   input.Notes,
		Niche:   string(pipeline.NormalizeNiche(input.Niche)),
	}
	created, err := cs.clientRepo.Create(ctx, nil, client)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}
	return created, nil
}

func (cs *clientService) Update(ctx context.Context, clientID uuid.UUID, input ClientInput) (*types.Client, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	client, err := cs.clientRepo.GetByID(ctx, nil, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("error fetching client: %w", err)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Status != "" && !types.IsValidClientStatus(input.Status) {
		return nil, fmt.Errorf("unknown client status %q", input.Status)
	}
	client.Name = strings.TrimSpace(input.Name)
	client.Email = strings.TrimSpace(input.Email)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Company = input.Company
	client.Address = input.Address
	client.Value = input.Value
	if input.Status != "" {
		client.Status = input.Status
	}
	client.Notes = input.Notes
	if input.Niche != "" {
		client.Niche = string(pipeline.NormalizeNiche(input.Niche))
	}
	updated, err := cs.clientRepo.Update(ctx, nil, client)
	if err != nil {
		return nil, fmt.Errorf("error updating client: %w", err)
	}
	return updated, nil
}

func (cs *clientService) Delete(ctx context.Context, clientID uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := cs.clientRepo.Delete(ctx, nil, userID, clientID); err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}
	return nil
}

// ConvertFromOpportunity creates a client pre-filled from an opportunity's
// contact fields. The two records stay independent afterwards: no foreign
// key, no back-reference, and the opportunity itself is untouched.
func (cs *clientService) ConvertFromOpportunity(ctx context.Context, oppID uuid.UUID, overrides ClientInput) (*types.Client, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	opp, err := cs.oppRepo.GetByID(ctx, nil, userID, oppID)
	if err != nil {
		return nil, fmt.Errorf("error fetching opportunity: %w", err)
	}
	niche := pipeline.NormalizeNiche(opp.Niche)
	meta := pipeline.DecodeNotes(opp.Notes, niche)

	input := ClientInput{
		Name:   opp.ContactName,
		Email:  opp.ContactEmail,
		Phone:  opp.ContactPhone,
		Value:  opp.Value,
		Status: types.ClientStatusClient,
		Notes:  meta.Notes,
		Niche:  string(niche),
	}
	if input.Name == "" {
		input.Name = opp.Title
	}
	if niche == pipeline.NichePodcaster {
		input.Status = types.ClientStatusGuest
	}
	if overrides.Name != "" {
		input.Name = overrides.Name
	}
	if overrides.Email != "" {
		input.Email = overrides.Email
	}
	if overrides.Phone != "" {
		input.Phone = overrides.Phone
	}
	if overrides.Company != "" {
		input.Company = overrides.Company
	}
	if overrides.Status != "" {
		input.Status = overrides.Status
	}
	return cs.Create(ctx, input)
}
