package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type ContactMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, msg *types.ContactMessage) (*types.ContactMessage, error)
}

type contactMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactMessageRepo(db *gorm.DB, baseLog *logger.Logger) ContactMessageRepo {
	return &contactMessageRepo{db: db, log: baseLog.With("repo", "ContactMessageRepo")}
}

func (cmr *contactMessageRepo) Create(ctx context.Context, tx *gorm.DB, msg *types.ContactMessage) (*types.ContactMessage, error) {
	conn := tx
	if conn == nil {
		conn = cmr.db
	}
	if err := conn.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
