package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/whalecast/internal/domain/notification"
)

type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetDetails(ctx context.Context, fid int64) (notification.Details, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.GetDetails")
	defer span.End()

	if fid <= 0 {
		return notification.Details{}, fmt.Errorf("%w: fid must be positive", ErrInvalidInput)
	}

	details, exists, err := s.repo.Get(ctx, fid)
	if err != nil {
		return notification.Details{}, wrapStoreErr("get notification details", err)
	}
	if !exists {
		return notification.Details{}, fmt.Errorf("%w: notification details for fid=%d", ErrNotFound, fid)
	}

	return details, nil
}

func (s *NotificationService) SetDetails(ctx context.Context, fid int64, details notification.Details) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.SetDetails")
	defer span.End()

	if fid <= 0 {
		return fmt.Errorf("%w: fid must be positive", ErrInvalidInput)
	}
	details.URL = strings.TrimSpace(details.URL)
	details.Token = strings.TrimSpace(details.Token)
	if err := details.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Set(ctx, fid, details); err != nil {
		return wrapStoreErr("set notification details", err)
	}
	return nil
}

func (s *NotificationService) DeleteDetails(ctx context.Context, fid int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.DeleteDetails")
	defer span.End()

	if fid <= 0 {
		return fmt.Errorf("%w: fid must be positive", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, fid); err != nil {
		return wrapStoreErr("delete notification details", err)
	}
	return nil
}
