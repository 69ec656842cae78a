package platform

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/ad-launcher/internal/domain"
)

// DryRunAdapter simulates a platform without network I/O. It hands out
// uuid-backed entity IDs and remembers everything it "created" so tests and
// operators can inspect what a launch would have done.
type DryRunAdapter struct {
	platform string

	// FailOn, when set, is consulted before each simulated call with the
	// entity kind ("campaign", "adset", "ad") and name; a non-nil error
	// simulates a scoped remote failure.
	FailOn func(kind, name string) error

	mu      sync.Mutex
	created []domain.RemoteEntity
}

// NewDryRun builds a dry-run adapter labeled with the platform it stands in for.
func NewDryRun(platform string) *DryRunAdapter {
	return &DryRunAdapter{platform: platform}
}

func (d *DryRunAdapter) EnsureAuth(ctx context.Context, orgID, connectionID string) error {
	return nil
}

func (d *DryRunAdapter) CreateCampaign(ctx context.Context, in domain.CampaignInput) (*domain.RemoteEntity, error) {
	return d.create("campaign", in.Name, map[string]any{"objective": in.Objective})
}

func (d *DryRunAdapter) CreateAdSet(ctx context.Context, in domain.AdSetInput) (*domain.RemoteEntity, error) {
	return d.create("adset", in.Name, map[string]any{"campaign_id": in.CampaignID})
}

func (d *DryRunAdapter) CreateAd(ctx context.Context, in domain.AdInput) (*domain.RemoteEntity, error) {
	return d.create("ad", in.Name, map[string]any{"adset_id": in.AdSetID})
}

func (d *DryRunAdapter) GetMetrics(ctx context.Context, scope domain.MetricsScope, from, to time.Time) ([]domain.AdMetrics, error) {
	return nil, nil
}

// Created returns a copy of everything the adapter simulated.
func (d *DryRunAdapter) Created() []domain.RemoteEntity {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.RemoteEntity, len(d.created))
	copy(out, d.created)
	return out
}

func (d *DryRunAdapter) create(kind, name string, echoed map[string]any) (*domain.RemoteEntity, error) {
	if d.FailOn != nil {
		if err := d.FailOn(kind, name); err != nil {
			return nil, err
		}
	}
	entity := domain.RemoteEntity{
		ID:        "dry-" + uuid.New().String(),
		Platform:  d.platform,
		CreatedAt: time.Now().UTC(),
		Fields:    echoed,
	}
	entity.Fields["kind"] = kind
	entity.Fields["name"] = name

	d.mu.Lock()
	d.created = append(d.created, entity)
	d.mu.Unlock()
	return &entity, nil
}
