package demo

import (
	"context"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
)

// Repository serves the demo table through profile.Repository. It rejects writes.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) List(_ context.Context) ([]profile.Profile, error) {
	return Profiles(), nil
}

// GetByID always reports found. Unknown ids resolve to the first demo profile.
func (r *Repository) GetByID(_ context.Context, id int64) (profile.Profile, bool, error) {
	return Profile(id), true, nil
}

func (r *Repository) Upsert(_ context.Context, _ profile.Profile) error {
	return profile.ErrReadOnly
}

func (r *Repository) Delete(_ context.Context, _ int64) error {
	return profile.ErrReadOnly
}
