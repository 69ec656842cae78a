package launch

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
	"github.com/ignite/ad-launcher/internal/platform"
)

// Runner drives the simple launch path against a platform adapter.
type Runner struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewRunner builds a Runner. metrics may be nil.
func NewRunner(log *logger.Logger, m *metrics.Metrics) *Runner {
	return &Runner{log: log, metrics: m}
}

// branchOutcome is what one subtree of the launch produced. Branches return
// values; the top-level walk folds them into the final report, so no
// mutable accumulator threads through the recursion.
type branchOutcome struct {
	created []domain.CreatedEntity
	errs    []domain.EntityError
}

func (b *branchOutcome) merge(other branchOutcome) {
	b.created = append(b.created, other.created...)
	b.errs = append(b.errs, other.errs...)
}

// Run validates, authenticates, expands, and walks the creation tree.
// Validation and auth failures are fatal: no partial result comes back.
// Creation failures are scoped to their subtree and recorded in the
// result's error list; siblings proceed.
func (r *Runner) Run(ctx context.Context, adapter platform.Adapter, b domain.Blueprint, orgID, connectionID string) (*domain.LaunchResult, error) {
	if err := ValidateBlueprint(b); err != nil {
		return nil, err
	}
	if err := adapter.EnsureAuth(ctx, orgID, connectionID); err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	params := ExpandBlueprint(b.Config)
	started := time.Now().UTC()

	var outcome branchOutcome
	for _, valueProp := range params.ValueProps {
		outcome.merge(r.campaignBranch(ctx, adapter, b, params, valueProp))
	}

	completed := time.Now().UTC()
	result := &domain.LaunchResult{
		BlueprintID: b.ID,
		Platform:    b.Platform,
		Created:     outcome.created,
		StartedAt:   started,
		CompletedAt: completed,
		DurationMs:  completed.Sub(started).Milliseconds(),
		Errors:      outcome.errs,
	}
	for _, e := range result.Created {
		switch e.Type {
		case domain.EntityCampaign:
			result.Totals.Campaigns++
		case domain.EntityAdSet:
			result.Totals.AdSets++
		case domain.EntityAd:
			result.Totals.Ads++
		}
	}

	r.observe(result)
	return result, nil
}

// campaignBranch creates one campaign and everything under it. A campaign
// failure abandons the subtree; an ad-set failure skips only that
// audience's ad.
func (r *Runner) campaignBranch(ctx context.Context, adapter platform.Adapter, b domain.Blueprint, params domain.ExpansionParams, valueProp string) branchOutcome {
	var out branchOutcome

	campaignName := fmt.Sprintf("%s - %s", b.Name, valueProp)
	campaign, err := adapter.CreateCampaign(ctx, domain.CampaignInput{
		Name:   campaignName,
		Budget: params.Budget,
	})
	if err != nil {
		r.log.WithError(err).WithField("campaign", campaignName).Warn("campaign creation failed, skipping subtree")
		out.errs = append(out.errs, domain.EntityError{Entity: campaignName, Error: err.Error()})
		return out
	}
	out.created = append(out.created, domain.CreatedEntity{
		Type:       domain.EntityCampaign,
		ExternalID: campaign.ID,
		Name:       campaignName,
	})

	for _, audience := range params.Audiences {
		out.merge(r.adSetBranch(ctx, adapter, campaign.ID, campaignName, audience, params, valueProp))
	}
	return out
}

func (r *Runner) adSetBranch(ctx context.Context, adapter platform.Adapter, campaignID, campaignName string, audience domain.Audience, params domain.ExpansionParams, valueProp string) branchOutcome {
	var out branchOutcome

	adSetName := fmt.Sprintf("%s - %s", campaignName, audience.Name)
	adSet, err := adapter.CreateAdSet(ctx, domain.AdSetInput{
		CampaignID: campaignID,
		Name:       adSetName,
		Audience:   audience,
		Budget:     params.Budget,
	})
	if err != nil {
		r.log.WithError(err).WithField("adset", adSetName).Warn("ad set creation failed, skipping its ad")
		out.errs = append(out.errs, domain.EntityError{Entity: adSetName, Error: err.Error()})
		return out
	}
	out.created = append(out.created, domain.CreatedEntity{
		Type:       domain.EntityAdSet,
		ExternalID: adSet.ID,
		Name:       adSetName,
		ParentID:   campaignID,
	})

	adName := adSetName + " - Ad"
	ad, err := adapter.CreateAd(ctx, domain.AdInput{
		AdSetID:  adSet.ID,
		Name:     adName,
		Creative: CreativeVariant(params.Creative, valueProp),
	})
	if err != nil {
		r.log.WithError(err).WithField("ad", adName).Warn("ad creation failed")
		out.errs = append(out.errs, domain.EntityError{Entity: adName, Error: err.Error()})
		return out
	}
	out.created = append(out.created, domain.CreatedEntity{
		Type:       domain.EntityAd,
		ExternalID: ad.ID,
		Name:       adName,
		ParentID:   adSet.ID,
	})
	return out
}

func (r *Runner) observe(result *domain.LaunchResult) {
	if r.metrics == nil {
		return
	}
	outcome := "success"
	if len(result.Errors) > 0 {
		outcome = "partial"
	}
	r.metrics.LaunchesTotal.WithLabelValues("simple", outcome).Inc()
	r.metrics.EntitiesCreated.WithLabelValues("campaign").Add(float64(result.Totals.Campaigns))
	r.metrics.EntitiesCreated.WithLabelValues("adset").Add(float64(result.Totals.AdSets))
	r.metrics.EntitiesCreated.WithLabelValues("ad").Add(float64(result.Totals.Ads))
	r.metrics.EntityErrors.WithLabelValues("launch").Add(float64(len(result.Errors)))
}
