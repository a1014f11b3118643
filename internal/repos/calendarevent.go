package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type CalendarEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*types.CalendarEvent, error)
	ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.CalendarEvent, error)
	ListBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string, from, to time.Time) ([]*types.CalendarEvent, error)
	Update(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) error
}

type calendarEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return &calendarEventRepo{db: db, log: baseLog.With("repo", "CalendarEventRepo")}
}

func (cer *calendarEventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cer.db
}

func (cer *calendarEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error) {
	if err := cer.conn(tx).WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (cer *calendarEventRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*types.CalendarEvent, error) {
	var event types.CalendarEvent
	if err := cer.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (cer *calendarEventRepo) ListByNiche(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string) ([]*types.CalendarEvent, error) {
	var results []*types.CalendarEvent
	query := cer.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	if err := query.Order("start_time ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cer *calendarEventRepo) ListBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, niche string, from, to time.Time) ([]*types.CalendarEvent, error) {
	var results []*types.CalendarEvent
	query := cer.conn(tx).WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to)
	if niche != "" {
		query = query.Where("niche = ?", niche)
	}
	if err := query.Order("start_time ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cer *calendarEventRepo) Update(ctx context.Context, tx *gorm.DB, event *types.CalendarEvent) (*types.CalendarEvent, error) {
	if err := cer.conn(tx).WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (cer *calendarEventRepo) Delete(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) error {
	return cer.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		Delete(&types.CalendarEvent{}).Error
}
