package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ContentItemInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type"`
	Stage       string         `json:"stage"`
	Status      string         `json:"status"`
	Platform    string         `json:"platform"`
	DueDate     *time.Time     `json:"due_date"`
	Niche       string         `json:"niche"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type ContentItemService interface {
	List(ctx context.Context, niche, contentType string) ([]*types.ContentItem, error)
	Get(ctx context.Context, itemID uuid.UUID) (*types.ContentItem, error)
	Create(ctx context.Context, input ContentItemInput) (*types.ContentItem, error)
	Update(ctx context.Context, itemID uuid.UUID, input ContentItemInput) (*types.ContentItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

type contentItemService struct {
	db       *gorm.DB
	log      *logger.Logger
	itemRepo repos.ContentItemRepo
}

func NewContentItemService(db *gorm.DB, log *logger.Logger, itemRepo repos.ContentItemRepo) ContentItemService {
	return &contentItemService{db: db, log: log.With("service", "ContentItemService"), itemRepo: itemRepo}
}

func validContentType(ct string) bool {
	switch ct {
	case types.ContentTypeContent, types.ContentTypeTask, types.ContentTypeCalendarEvent:
		return true
	}
	return false
}

func (cis *contentItemService) List(ctx context.Context, niche, contentType string) ([]*types.ContentItem, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if contentType != "" && !validContentType(contentType) {
		return nil, fmt.Errorf("unknown content_type %q", contentType)
	}
	if niche != "" {
		niche = string(pipeline.NormalizeNiche(niche))
	}
	items, err := cis.itemRepo.ListByNiche(ctx, nil, userID, niche, contentType)
	if err != nil {
		return nil, fmt.Errorf("error listing content items: %w", err)
	}
	return items, nil
}

func (cis *contentItemService) Get(ctx context.Context, itemID uuid.UUID) (*types.ContentItem, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	item, err := cis.itemRepo.GetByID(ctx, nil, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("error fetching content item: %w", err)
	}
	return item, nil
}

func (cis *contentItemService) Create(ctx context.Context, input ContentItemInput) (*types.ContentItem, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	contentType := input.ContentType
	if contentType == "" {
		contentType = types.ContentTypeContent
	}
	if !validContentType(contentType) {
		return nil, fmt.Errorf("unknown content_type %q", contentType)
	}
	item := &types.ContentItem{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		ContentType: contentType,
		Stage:       input.Stage,
		Status:      input.Status,
		Platform:    input.Platform,
		DueDate:     input.DueDate,
		Niche:       string(pipeline.NormalizeNiche(input.Niche)),
		Metadata:    input.Metadata,
	}
	created, err := cis.itemRepo.Create(ctx, nil, item)
	if err != nil {
		return nil, fmt.Errorf("error creating content item: %w", err)
	}
	return created, nil
}

func (cis *contentItemService) Update(ctx context.Context, itemID uuid.UUID, input ContentItemInput) (*types.ContentItem, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	item, err := cis.itemRepo.GetByID(ctx, nil, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("error fetching content item: %w", err)
	}
	if input.Title != "" {
		item.Title = input.Title
	}
	item.Description = input.Description
	if input.ContentType != "" {
		if !validContentType(input.ContentType) {
			return nil, fmt.Errorf("unknown content_type %q", input.ContentType)
		}
		item.ContentType = input.ContentType
	}
	item.Stage = input.Stage
	if input.Status != "" {
		item.Status = input.Status
	}
	item.Platform = input.Platform
	item.DueDate = input.DueDate
	if input.Niche != "" {
		item.Niche = string(pipeline.NormalizeNiche(input.Niche))
	}
	if input.Metadata != nil {
		item.Metadata = input.Metadata
	}
	updated, err := cis.itemRepo.Update(ctx, nil, item)
	if err != nil {
		return nil, fmt.Errorf("error updating content item: %w", err)
	}
	return updated, nil
}

func (cis *contentItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	if err := cis.itemRepo.Delete(ctx, nil, userID, itemID); err != nil {
		return fmt.Errorf("error deleting content item: %w", err)
	}
	return nil
}
