package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ContentItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.ContentItem) (*types.ContentItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) (*types.ContentItem, error)
	ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche, contentType string) ([]*types.ContentItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.ContentItem) (*types.ContentItem, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error
}

type contentItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentItemRepo(db *gorm.DB, baseLog *logger.Logger) ContentItemRepo {
	return &contentItemRepo{db: db, log: baseLog.With("repo", "ContentItemRepo")}
}

func (cir *contentItemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cir.db
}

func (cir *contentItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ContentItem) (*types.ContentItem, error) {
	if err := cir.conn(tx).WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (cir *contentItemRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) (*types.ContentItem, error) {
	var item types.ContentItem
	if err := cir.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (cir *contentItemRepo) ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche, contentType string) ([]*types.ContentItem, error) {
	var results []*types.ContentItem
	query := cir.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cir *contentItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ContentItem) (*types.ContentItem, error) {
	if err := cir.conn(tx).WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (cir *contentItemRepo) Delete(ctx context.Context, tx *gorm.DB, userID, itemID uuid.UUID) error {
	return cir.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&types.ContentItem{}).Error
}
