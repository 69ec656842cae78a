package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
)

// Adapter drives the Graph API through the generic platform adapter surface
// used by the simple launch path. The bulk orchestrator bypasses it and
// builds raw payloads against the Client directly.
type Adapter struct {
	client    *Client
	accountID string
	pageID    string
}

// NewAdapter wraps a Graph client for one ad account.
func NewAdapter(client *Client, accountID, pageID string) *Adapter {
	return &Adapter{client: client, accountID: accountID, pageID: pageID}
}

// EnsureAuth verifies the configured token can read the ad account. Failure
// is fatal for a launch; nothing is created after a failed auth check.
func (a *Adapter) EnsureAuth(ctx context.Context, orgID, connectionID string) error {
	if a.client.Token() == "" {
		return fmt.Errorf("no access token configured for org %s connection %s", orgID, connectionID)
	}
	if err := a.client.GetAdAccount(ctx, a.accountID); err != nil {
		return fmt.Errorf("auth check failed for connection %s: %w", connectionID, err)
	}
	return nil
}

// CreateCampaign creates a paused campaign. Budget amounts convert to minor
// units here, at payload construction, and nowhere else.
func (a *Adapter) CreateCampaign(ctx context.Context, in domain.CampaignInput) (*domain.RemoteEntity, error) {
	objective := in.Objective
	if objective == "" {
		objective = "OUTCOME_TRAFFIC"
	}
	status := in.Status
	if status == "" {
		status = "PAUSED"
	}

	fields := url.Values{}
	fields.Set("name", in.Name)
	fields.Set("objective", objective)
	fields.Set("status", status)
	fields.Set("special_ad_categories", "[]")
	setBudget(fields, in.Budget)

	id, err := a.client.CreateEntity(ctx, a.accountID, "campaigns", fields)
	if err != nil {
		return nil, err
	}
	return a.entity(id, map[string]any{"name": in.Name, "objective": objective, "status": status}), nil
}

// CreateAdSet creates one ad set under the given campaign.
func (a *Adapter) CreateAdSet(ctx context.Context, in domain.AdSetInput) (*domain.RemoteEntity, error) {
	if in.CampaignID == "" {
		return nil, fmt.Errorf("ad set %q requires a campaign id", in.Name)
	}

	targeting, err := json.Marshal(audienceTargeting(in.Audience))
	if err != nil {
		return nil, fmt.Errorf("encode targeting: %w", err)
	}

	fields := url.Values{}
	fields.Set("name", in.Name)
	fields.Set("campaign_id", in.CampaignID)
	fields.Set("status", "PAUSED")
	fields.Set("billing_event", "IMPRESSIONS")
	fields.Set("optimization_goal", "LINK_CLICKS")
	fields.Set("targeting", string(targeting))
	setBudget(fields, in.Budget)

	id, err := a.client.CreateEntity(ctx, a.accountID, "adsets", fields)
	if err != nil {
		return nil, err
	}
	return a.entity(id, map[string]any{"name": in.Name, "campaign_id": in.CampaignID}), nil
}

// CreateAd creates a link-ad creative and an ad referencing it.
func (a *Adapter) CreateAd(ctx context.Context, in domain.AdInput) (*domain.RemoteEntity, error) {
	if in.AdSetID == "" {
		return nil, fmt.Errorf("ad %q requires an ad set id", in.Name)
	}

	storySpec := map[string]any{
		"page_id": a.pageID,
		"link_data": map[string]any{
			"name":        in.Creative.Headline,
			"description": in.Creative.Description,
			"link":        in.Creative.ImageURL,
			"call_to_action": map[string]any{
				"type": in.Creative.CallToAction,
			},
		},
	}
	encoded, err := json.Marshal(storySpec)
	if err != nil {
		return nil, fmt.Errorf("encode story spec: %w", err)
	}

	creativeFields := url.Values{}
	creativeFields.Set("name", in.Name+" creative")
	creativeFields.Set("object_story_spec", string(encoded))
	creativeID, err := a.client.CreateEntity(ctx, a.accountID, "adcreatives", creativeFields)
	if err != nil {
		return nil, fmt.Errorf("create creative: %w", err)
	}

	adFields := url.Values{}
	adFields.Set("name", in.Name)
	adFields.Set("adset_id", in.AdSetID)
	adFields.Set("status", "PAUSED")
	adFields.Set("creative", fmt.Sprintf(`{"creative_id":"%s"}`, creativeID))
	id, err := a.client.CreateEntity(ctx, a.accountID, "ads", adFields)
	if err != nil {
		return nil, err
	}
	return a.entity(id, map[string]any{"name": in.Name, "adset_id": in.AdSetID, "creative_id": creativeID}), nil
}

// GetMetrics reads the insights edge for the scoped entity.
func (a *Adapter) GetMetrics(ctx context.Context, scope domain.MetricsScope, from, to time.Time) ([]domain.AdMetrics, error) {
	id := scope.ID
	if scope.Level == "account" && id == "" {
		id = a.accountID
	}
	rows, err := a.client.GetInsights(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].EntityType = scope.Level
	}
	return rows, nil
}

func (a *Adapter) entity(id string, echoed map[string]any) *domain.RemoteEntity {
	return &domain.RemoteEntity{
		ID:        id,
		Platform:  "meta",
		CreatedAt: time.Now().UTC(),
		Fields:    echoed,
	}
}

// setBudget writes the budget onto the right field in minor currency units.
func setBudget(fields url.Values, b domain.Budget) {
	if b.Amount <= 0 {
		return
	}
	minor := strconv.FormatInt(int64(math.Round(b.Amount*100)), 10)
	if b.Type == domain.BudgetLifetime {
		fields.Set("lifetime_budget", minor)
	} else {
		fields.Set("daily_budget", minor)
	}
}

// audienceTargeting maps the blueprint audience onto a Graph targeting spec.
func audienceTargeting(aud domain.Audience) map[string]any {
	spec := map[string]any{
		"age_min": aud.Age.Min,
		"age_max": aud.Age.Max,
	}
	if len(aud.Locations) > 0 {
		spec["geo_locations"] = map[string]any{"countries": aud.Locations}
	}
	if len(aud.Interests) > 0 {
		interests := make([]map[string]string, 0, len(aud.Interests))
		for _, name := range aud.Interests {
			interests = append(interests, map[string]string{"name": name})
		}
		spec["flexible_spec"] = []map[string]any{{"interests": interests}}
	}
	return spec
}
