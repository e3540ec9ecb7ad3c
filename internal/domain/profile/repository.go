package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Profile, error)
	GetByID(ctx context.Context, id int64) (Profile, bool, error)
	Upsert(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id int64) error
}
