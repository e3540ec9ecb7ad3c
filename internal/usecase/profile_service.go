package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
)

type ProfileService struct {
	repo      profile.Repository
	validator *validator.Validate
}

func NewProfileService(repo profile.Repository) *ProfileService {
	return &ProfileService{
		repo:      repo,
		validator: validator.New(),
	}
}

type UpsertProfileInput struct {
	ID            int64   `json:"fid" validate:"required,gt=0"`
	Handle        string  `json:"username" validate:"required,max=64"`
	DisplayName   string  `json:"displayName" validate:"max=128"`
	WalletAddress string  `json:"wallet" validate:"omitempty,startswith=0x,max=128"`
	Verified      bool    `json:"verified"`
	WhaleScore    int     `json:"whale_score" validate:"gte=0,lte=100"`
	FollowerCount int     `json:"followers" validate:"gte=0"`
	WinRate30d    float64 `json:"winrate_30d" validate:"gte=0,lte=1"`
	PnL30d        float64 `json:"pnl_30d"`
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.ListProfiles")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapStoreErr("list profiles", err)
	}

	return items, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id int64) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	defer span.End()

	if id <= 0 {
		return profile.Profile{}, fmt.Errorf("%w: profile id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, wrapStoreErr("get profile", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile=%d", ErrNotFound, id)
	}

	return item, nil
}

func (s *ProfileService) UpsertProfile(ctx context.Context, input UpsertProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpsertProfile")
	defer span.End()

	input.Handle = strings.TrimSpace(input.Handle)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.WalletAddress = strings.TrimSpace(input.WalletAddress)
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	item := profile.Profile{
		ID:            input.ID,
		Handle:        input.Handle,
		DisplayName:   input.DisplayName,
		WalletAddress: input.WalletAddress,
		Verified:      input.Verified,
		WhaleScore:    input.WhaleScore,
		FollowerCount: input.FollowerCount,
		WinRate30d:    input.WinRate30d,
		PnL30d:        input.PnL30d,
	}
	if err := item.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return profile.Profile{}, wrapStoreErr("upsert profile", err)
	}

	return item, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.DeleteProfile")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: profile id must be positive", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStoreErr("delete profile", err)
	}

	return nil
}
