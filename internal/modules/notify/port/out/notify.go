package out

import (
	"context"
	"time"

	"focusflow/internal/modules/notify/domain"
)

// Messenger is the chat side channel. A nil response with a nil error means
// the feature is disabled or unconfigured.
type Messenger interface {
	PostMessage(ctx context.Context, text string) (*domain.Response, error)
	SetStatus(ctx context.Context, text string, expiration time.Time) (*domain.Response, error)
	ClearStatus(ctx context.Context) (*domain.Response, error)
}

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, note domain.Note) error
}

type Recorder interface {
	NotificationSent(sink string, err error)
}
