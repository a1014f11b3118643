package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, clientID uuid.UUID) (*types.Client, error)
	ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.Client, error)
	Update(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, clientID uuid.UUID) error
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (cr *clientRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *clientRepo) Create(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
	if err := cr.conn(tx).WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (cr *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, clientID uuid.UUID) (*types.Client, error) {
	var client types.Client
	if err := cr.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (cr *clientRepo) ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.Client, error) {
	var results []*types.Client
	query := cr.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *clientRepo) Update(ctx context.Context, tx *gorm.DB, client *types.Client) (*types.Client, error) {
	if err := cr.conn(tx).WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (cr *clientRepo) Delete(ctx context.Context, tx *gorm.DB, userID, clientID uuid.UUID) error {
	return cr.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", clientID, userID).
		Delete(&types.Client{}).Error
}
