package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	GetTimezone(ctx context.Context) (string, error)
	UpdateTimezone(ctx context.Context, timezone string) (*types.User, error)
	UpdatePrimaryNiche(ctx context.Context, niche string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{db: db, log: log.With("service", "UserService"), userRepo: userRepo}
}

func (us *userService) me(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("request data not set in context")
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	return us.me(ctx)
}

// GetTimezone resolves the stored timezone name, defaulting to UTC for
// users who never picked one or whose stored value no longer loads.
func (us *userService) GetTimezone(ctx context.Context) (string, error) {
	user, err := us.me(ctx)
	if err != nil {
		return "", err
	}
	return pipeline.ResolveTimezone(user.Timezone).String(), nil
}

func (us *userService) UpdateTimezone(ctx context.Context, timezone string) (*types.User, error) {
	user, err := us.me(ctx)
	if err != nil {
		return nil, err
	}
	resolved := pipeline.ResolveTimezone(timezone)
	if timezone != "" && resolved.String() != timezone {
		return nil, fmt.Errorf("unknown timezone %q", timezone)
	}
	user.Timezone = resolved.String()
	updated, err := us.userRepo.Update(ctx, nil, user)
	if err != nil {
		return nil, fmt.Errorf("error updating timezone: %w", err)
	}
	return updated, nil
}

func (us *userService) UpdatePrimaryNiche(ctx context.Context, niche string) (*types.User, error) {
	user, err := us.me(ctx)
	if err != nil {
		return nil, err
	}
	user.PrimaryNiche = string(pipeline.NormalizeNiche(niche))
	updated, err := us.userRepo.Update(ctx, nil, user)
	if err != nil {
		return nil, fmt.Errorf("error updating primary niche: %w", err)
	}
	return updated, nil
}
