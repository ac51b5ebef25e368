package handler

import (
	"context"

	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/service"
)

// The handlers depend on these narrow views of the repositories.

type ArtistStore interface {
	GetByID(ctx context.Context, id string) (*model.Artist, error)
	GetActiveBySlug(ctx context.Context, slug string) (*model.Artist, error)
	IsActive(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]*model.Artist, error)
	ListActive(ctx context.Context) ([]*model.Artist, error)
	Create(ctx context.Context, a *model.Artist) error
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id string) error
}

// ItemStore is the shape shared by every per-artist child collection.
type ItemStore[T any] interface {
	ListByArtist(ctx context.Context, artistID string) ([]*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type LeadStore interface {
	Create(ctx context.Context, l *model.Lead) error
	ListByArtist(ctx context.Context, artistID string) ([]*model.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type OperatorStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Operator, error)
	GetByID(ctx context.Context, id string) (*model.Operator, error)
}

type StatsStore interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
}

type ContactResolver interface {
	ResolveContactLink(ctx context.Context, artistID, displayName string) (service.ContactLink, error)
}

type Reorderer interface {
	Reorder(ctx context.Context, op *model.Operator, c model.Collection, artistID string, ids []string) error
}

type EngagementRecorder interface {
	RecordPageView(ctx context.Context, artistID, referrer, userAgent string)
	RecordButtonClick(ctx context.Context, artistID, buttonType string)
}
