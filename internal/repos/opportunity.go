package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type OpportunityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, opp *types.Opportunity) (*types.Opportunity, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, oppID uuid.UUID) (*types.Opportunity, error)
	ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.Opportunity, error)
	Update(ctx context.Context, tx *gorm.DB, opp *types.Opportunity) (*types.Opportunity, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, oppID uuid.UUID) error
}

type opportunityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOpportunityRepo(db *gorm.DB, baseLog *logger.Logger) OpportunityRepo {
	return &opportunityRepo{db: db, log: baseLog.With("repo", "OpportunityRepo")}
}

func (or *opportunityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return or.db
}

func (or *opportunityRepo) Create(ctx context.Context, tx *gorm.DB, opp *types.Opportunity) (*types.Opportunity, error) {
	if err := or.conn(tx).WithContext(ctx).Create(opp).Error; err != nil {
		return nil, err
	}
	return opp, nil
}

func (or *opportunityRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, oppID uuid.UUID) (*types.Opportunity, error) {
	var opp types.Opportunity
	if err := or.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", oppID, userID).
		First(&opp).Error; err != nil {
		return nil, err
	}
	return &opp, nil
}

func (or *opportunityRepo) ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.Opportunity, error) {
	var results []*types.Opportunity
	query := or.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *opportunityRepo) Update(ctx context.Context, tx *gorm.DB, opp *types.Opportunity) (*types.Opportunity, error) {
	if err := or.conn(tx).WithContext(ctx).Save(opp).Error; err != nil {
		return nil, err
	}
	return opp, nil
}

func (or *opportunityRepo) Delete(ctx context.Context, tx *gorm.DB, userID, oppID uuid.UUID) error {
	return or.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", oppID, userID).
		Delete(&types.Opportunity{}).Error
}
