package kvstore

import (
	"context"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/whalecast/internal/domain/notification"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
)

// NotificationRepository keeps notification details under the bare <fid> key.
type NotificationRepository struct {
	store kv.Store
}

func NewNotificationRepository(store kv.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Get(ctx context.Context, fid int64) (notification.Details, bool, error) {
	key := notification.Key(fid)
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return notification.Details{}, false, storeErr("get", key, err)
	}
	if !ok {
		return notification.Details{}, false, nil
	}

	var details notification.Details
	if err := sonic.Unmarshal(raw, &details); err != nil {
		return notification.Details{}, false, fmt.Errorf("decode notification details %s: %w", key, err)
	}
	return details, true, nil
}

func (r *NotificationRepository) Set(ctx context.Context, fid int64, details notification.Details) error {
	raw, err := sonic.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode notification details: %w", err)
	}

	key := notification.Key(fid)
	if err := r.store.Set(ctx, key, raw); err != nil {
		return storeErr("set", key, err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, fid int64) error {
	key := notification.Key(fid)
	if err := r.store.Delete(ctx, key); err != nil {
		return storeErr("delete", key, err)
	}
	return nil
}

func storeErr(op, key string, err error) error {
	if errors.Is(err, kv.ErrUnavailable) {
		return fmt.Errorf("%s notification details %s: %w: %w", op, key, notification.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s notification details %s: %w", op, key, err)
}
