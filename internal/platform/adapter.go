// Package platform defines the capability surface a launch needs from an
// advertising platform, and the factory that selects an implementation.
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
)

// ErrUnsupportedPlatform is returned by the factory for platform names that
// have no adapter. Callers fail fast instead of silently degrading.
var ErrUnsupportedPlatform = errors.New("platform not implemented")

// Adapter is the capability set a launch drives. Creation calls are not
// idempotent: calling one twice creates two remote entities, so callers
// never blindly retry a call that may have succeeded.
type Adapter interface {
	EnsureAuth(ctx context.Context, orgID, connectionID string) error
	CreateCampaign(ctx context.Context, in domain.CampaignInput) (*domain.RemoteEntity, error)
	CreateAdSet(ctx context.Context, in domain.AdSetInput) (*domain.RemoteEntity, error)
	CreateAd(ctx context.Context, in domain.AdInput) (*domain.RemoteEntity, error)
	GetMetrics(ctx context.Context, scope domain.MetricsScope, from, to time.Time) ([]domain.AdMetrics, error)
}
