package place

import (
	"context"
	"time"
	c "wonderchain/internal/core/domain/common"
)

type CreateInput struct {
	Slug        Slug
	Name        string
	Summary     c.Optional[string]
	Description c.Optional[string]
	Coordinates Coordinates
	ImageURL    c.Optional[string]
	Status      Status
	CreatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Place, error)
	GetByID(ctx context.Context, id ID) (Place, error)
	// ListPublished returns published places, most recently updated first.
	ListPublished(ctx context.Context) ([]Place, error)
	SetStatus(ctx context.Context, id ID, status Status, at time.Time) (Place, error)
}

type ChangeKind string

const (
	ChangePublished   ChangeKind = "published"
	ChangeUnpublished ChangeKind = "unpublished"
)

type Change struct {
	PlaceID ID
	Slug    Slug
	Kind    ChangeKind
	At      time.Time
}

// ChangePublisher notifies map clients that the set of published places changed.
type ChangePublisher interface {
	PublishChange(ctx context.Context, change Change) error
}
