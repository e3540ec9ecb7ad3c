package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/whalecast/internal/domain/notification"
	"github.com/riskibarqy/whalecast/internal/domain/profile"
	notificationmock "github.com/riskibarqy/whalecast/internal/mocks/domain/notification"
)

func TestNotificationService_GetDetails(t *testing.T) {
	t.Parallel()

	repo := notificationmock.NewRepository(t)
	details := notification.Details{URL: "https://frame.example/notify", Token: "tok"}
	repo.On("Get", mock.Anything, int64(205)).Return(details, true, nil).Once()
	repo.On("Get", mock.Anything, int64(206)).Return(notification.Details{}, false, nil).Once()

	service := NewNotificationService(repo)

	got, err := service.GetDetails(context.Background(), 205)
	require.NoError(t, err)
	require.Equal(t, details, got)

	_, err = service.GetDetails(context.Background(), 206)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetDetails(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNotificationService_SetDetails(t *testing.T) {
	t.Parallel()

	repo := notificationmock.NewRepository(t)
	repo.
		On("Set", mock.Anything, int64(205), notification.Details{URL: "https://frame.example/notify", Token: "tok"}).
		Return(nil).
		Once()

	service := NewNotificationService(repo)
	err := service.SetDetails(context.Background(), 205, notification.Details{URL: " https://frame.example/notify ", Token: "tok "})
	require.NoError(t, err)

	err = service.SetDetails(context.Background(), 205, notification.Details{URL: "https://frame.example/notify"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNotificationService_DeleteDetailsStoreUnavailable(t *testing.T) {
	t.Parallel()

	repo := notificationmock.NewRepository(t)
	repo.On("Delete", mock.Anything, int64(205)).Return(profile.ErrStoreUnavailable).Once()

	err := NewNotificationService(repo).DeleteDetails(context.Background(), 205)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
