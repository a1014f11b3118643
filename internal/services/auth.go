package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (TokenPair, error)
	RefreshUser(ctx context.Context, refreshToken string) (TokenPair, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (*types.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(user.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if user.FirstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	user.PrimaryNiche = string(pipeline.NormalizeNiche(user.PrimaryNiche))
	if user.Timezone != "" {
		user.Timezone = pipeline.ResolveTimezone(user.Timezone).String()
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = string(hashed)

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		if as.avatarService != nil {
			if err := as.avatarService.GenerateAndStoreAvatar(ctx, tx, user); err != nil {
				// Missing fonts or media dir should not block signup.
				as.log.Warn("Avatar generation failed (ignored)", "error", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPair{}, fmt.Errorf("invalid email or password")
	}

	var pair TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	}); err != nil {
		as.log.Warn("Login transaction error", "error", err)
		return TokenPair{}, err
	}
	return pair, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (TokenPair, error) {
	var pair TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return fmt.Errorf("invalid refresh token")
		}
		if stored.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.DeleteByRefreshToken(ctx, tx, refreshToken)
			return fmt.Errorf("refresh token expired")
		}
		user, err := as.userRepo.GetByID(ctx, tx, stored.UserID)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}
		if err := as.userTokenRepo.DeleteByRefreshToken(ctx, tx, refreshToken); err != nil {
			return fmt.Errorf("error rotating refresh token: %w", err)
		}
		p, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	}); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		return as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("request data not set in context")
	}
	return as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	email, _ := claims["email"].(string)
	timezone, _ := claims["timezone"].(string)
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID:   userID,
		Email:    email,
		Timezone: timezone,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"email":    user.Email,
		"timezone": user.Timezone,
		"iat":      now.Unix(),
		"exp":      now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return TokenPair{}, fmt.Errorf("error signing access token: %w", err)
	}
	refreshToken := uuid.New().String()
	if _, err := as.userTokenRepo.Create(ctx, tx, &types.UserToken{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}); err != nil {
		return TokenPair{}, fmt.Errorf("error storing refresh token: %w", err)
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
