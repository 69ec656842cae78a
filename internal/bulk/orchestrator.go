// Package bulk drives the wizard's pre-expanded campaign tree against the
// platform's raw creation surface: one campaign, N ad sets, M ads each, with
// media resolution and creative construction per ad.
package bulk

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/ignite/ad-launcher/internal/creative"
	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/media"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
)

// GraphCreator is the low-level creation surface of the platform client.
// Every entity kind goes through the same account edge call.
type GraphCreator interface {
	CreateEntity(ctx context.Context, accountID, edge string, fields url.Values) (string, error)
}

// MediaResolver turns creative media references into stable asset handles.
type MediaResolver interface {
	ResolveImage(ctx context.Context, ref domain.AssetReference) (*media.ImageAsset, error)
	UploadVideo(ctx context.Context, ref domain.AssetReference, opts media.VideoUploadOptions) (*media.VideoAsset, error)
	WaitForVideoReady(ctx context.Context, videoID string) bool
	VideoThumbnail(ctx context.Context, videoID string) string
}

// Store resolves credentials and accounts and records created entities.
type Store interface {
	GetCredential(ctx context.Context, orgID, connectionID string) (*domain.AccessCredential, error)
	GetAdAccount(ctx context.Context, id string) (*domain.AdAccount, error)
	UpsertCreatedEntity(ctx context.Context, orgID, accountID string, e domain.CreatedEntity) error
}

// Clients bundles the per-launch platform surfaces, constructed once the
// access credential is resolved.
type Clients struct {
	Graph GraphCreator
	Media MediaResolver
}

// ClientFactory builds the platform surfaces for one resolved credential
// and remote ad-account ID.
type ClientFactory func(accessToken, accountExternalID string) Clients

// Orchestrator runs the bulk launch path.
type Orchestrator struct {
	store      Store
	newClients ClientFactory
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewOrchestrator builds an Orchestrator. metrics may be nil.
func NewOrchestrator(store Store, factory ClientFactory, log *logger.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{store: store, newClients: factory, log: log, metrics: m}
}

// Launch resolves the caller's credential and ad account, creates the
// campaign, then walks ad sets and ads. Credential, account, and campaign
// failures are fatal; ad-set and ad failures are recorded against their
// entity and siblings proceed. Success is derived from the error list.
func (o *Orchestrator) Launch(ctx context.Context, req domain.BulkLaunchRequest) (*domain.BulkLaunchResult, error) {
	cred, err := o.store.GetCredential(ctx, req.OrgID, req.ConnectionID)
	if err != nil {
		return nil, fmt.Errorf("resolve credential: %w", err)
	}
	account, err := o.store.GetAdAccount(ctx, req.AdAccountID)
	if err != nil {
		return nil, fmt.Errorf("resolve ad account: %w", err)
	}
	clients := o.newClients(cred.AccessToken, account.ExternalID)

	campaignID, err := clients.Graph.CreateEntity(ctx, account.ExternalID, "campaigns", buildCampaignFields(req.Campaign))
	if err != nil {
		return nil, fmt.Errorf("create campaign %q: %w", req.Campaign.Name, err)
	}
	campaign := domain.CreatedEntity{
		Type:       domain.EntityCampaign,
		ExternalID: campaignID,
		Name:       req.Campaign.Name,
	}
	o.persist(ctx, req, campaign)

	result := &domain.BulkLaunchResult{
		CampaignID: campaignID,
		Results: domain.BulkResults{
			Campaign: &campaign,
			AdSets:   []domain.CreatedEntity{},
			Ads:      []domain.CreatedEntity{},
			Errors:   []domain.EntityError{},
		},
	}

	for _, cfg := range req.AdSets {
		adSetID, err := clients.Graph.CreateEntity(ctx, account.ExternalID, "adsets", buildAdSetFields(campaignID, cfg, req))
		if err != nil {
			o.log.WithError(err).WithField("adset", cfg.Name).Warn("ad set creation failed, skipping its ads")
			result.Results.Errors = append(result.Results.Errors, domain.EntityError{Entity: cfg.Name, Error: err.Error()})
			continue
		}
		adSet := domain.CreatedEntity{
			Type:       domain.EntityAdSet,
			ExternalID: adSetID,
			Name:       cfg.Name,
			ParentID:   campaignID,
		}
		o.persist(ctx, req, adSet)
		result.Results.AdSets = append(result.Results.AdSets, adSet)

		for _, ad := range cfg.Ads {
			created, err := o.createAd(ctx, clients, req, account.ExternalID, adSetID, ad)
			if err != nil {
				o.log.WithError(err).WithField("ad", ad.Name).Warn("ad creation failed")
				result.Results.Errors = append(result.Results.Errors, domain.EntityError{Entity: ad.Name, Error: err.Error()})
				continue
			}
			o.persist(ctx, req, created)
			result.Results.Ads = append(result.Results.Ads, created)
		}
	}

	result.Success = len(result.Results.Errors) == 0
	o.observe(result)
	return result, nil
}

// createAd resolves the ad's media, creates the adcreative, then the ad
// itself. Any failure fails this ad only.
func (o *Orchestrator) createAd(ctx context.Context, clients Clients, req domain.BulkLaunchRequest, accountExternalID, adSetID string, ad domain.AdConfig) (domain.CreatedEntity, error) {
	feed, story, err := o.resolveAssets(ctx, clients.Media, ad)
	if err != nil {
		return domain.CreatedEntity{}, err
	}

	creativeID, err := clients.Graph.CreateEntity(ctx, accountExternalID, "adcreatives", buildCreativeFields(ad, req, feed, story))
	if err != nil {
		return domain.CreatedEntity{}, fmt.Errorf("create creative: %w", err)
	}

	name := annotateAdName(ad, feed)
	adID, err := clients.Graph.CreateEntity(ctx, accountExternalID, "ads", buildAdFields(adSetID, name, creativeID))
	if err != nil {
		return domain.CreatedEntity{}, fmt.Errorf("create ad: %w", err)
	}

	return domain.CreatedEntity{
		Type:       domain.EntityAd,
		ExternalID: adID,
		Name:       name,
		ParentID:   adSetID,
		Metadata:   map[string]string{"creativeId": creativeID},
	}, nil
}

// resolveAssets runs the feed and story media pipelines concurrently and
// joins them before creative construction. Either leg failing fails the ad.
func (o *Orchestrator) resolveAssets(ctx context.Context, m MediaResolver, ad domain.AdConfig) (feed, story creative.ResolvedAsset, err error) {
	feedRef, err := domain.ParseAssetReference(ad.FeedMedia)
	if err != nil {
		return feed, story, fmt.Errorf("feed media: %w", err)
	}

	var storyRef domain.AssetReference
	hasStory := ad.StoryMedia != ""
	if hasStory {
		if storyRef, err = domain.ParseAssetReference(ad.StoryMedia); err != nil {
			return feed, story, fmt.Errorf("story media: %w", err)
		}
	}

	var wg sync.WaitGroup
	var feedErr, storyErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		feed, feedErr = o.resolveOne(ctx, m, feedRef, ad)
	}()
	if hasStory {
		wg.Add(1)
		go func() {
			defer wg.Done()
			story, storyErr = o.resolveOne(ctx, m, storyRef, ad)
		}()
	}
	wg.Wait()

	if feedErr != nil {
		return feed, story, fmt.Errorf("resolve feed media: %w", feedErr)
	}
	if storyErr != nil {
		return feed, story, fmt.Errorf("resolve story media: %w", storyErr)
	}
	return feed, story, nil
}

// resolveOne runs a single asset through the matching pipeline. A missing
// video thumbnail is soft: the creative is built without image_url.
func (o *Orchestrator) resolveOne(ctx context.Context, m MediaResolver, ref domain.AssetReference, ad domain.AdConfig) (creative.ResolvedAsset, error) {
	if ad.IsVideo {
		video, err := m.UploadVideo(ctx, ref, media.VideoUploadOptions{Title: ad.Name})
		if err != nil {
			return creative.ResolvedAsset{}, err
		}
		thumb := video.ThumbnailURL
		if thumb == "" {
			if m.WaitForVideoReady(ctx, video.VideoID) {
				thumb = m.VideoThumbnail(ctx, video.VideoID)
			} else {
				o.log.WithField("videoId", video.VideoID).Warn("video not ready in time, creative proceeds without thumbnail")
			}
		}
		return creative.ResolvedAsset{VideoID: video.VideoID, ThumbnailURL: thumb}, nil
	}

	image, err := m.ResolveImage(ctx, ref)
	if err != nil {
		return creative.ResolvedAsset{}, err
	}
	return creative.ResolvedAsset{ImageHash: image.Identifier()}, nil
}

// persist records a created entity; the remote entity already exists, so a
// write failure is logged and never fails the launch.
func (o *Orchestrator) persist(ctx context.Context, req domain.BulkLaunchRequest, e domain.CreatedEntity) {
	if err := o.store.UpsertCreatedEntity(ctx, req.OrgID, req.AdAccountID, e); err != nil {
		o.log.WithError(err).WithFields(logger.Fields{
			"entityType": string(e.Type),
			"externalId": e.ExternalID,
		}).Warn("failed to persist created entity")
	}
}

func (o *Orchestrator) observe(result *domain.BulkLaunchResult) {
	if o.metrics == nil {
		return
	}
	outcome := "success"
	if !result.Success {
		outcome = "partial"
	}
	o.metrics.LaunchesTotal.WithLabelValues("bulk", outcome).Inc()
	o.metrics.EntitiesCreated.WithLabelValues("campaign").Inc()
	o.metrics.EntitiesCreated.WithLabelValues("adset").Add(float64(len(result.Results.AdSets)))
	o.metrics.EntitiesCreated.WithLabelValues("ad").Add(float64(len(result.Results.Ads)))
	if n := len(result.Results.Errors); n > 0 {
		o.metrics.EntityErrors.WithLabelValues("bulk").Add(float64(n))
	}
}
