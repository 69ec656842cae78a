package launch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/platform"
)

func newRunner() *Runner {
	return NewRunner(logger.Discard(), nil)
}

func TestRun_HappyPathCreatesOrderedTree(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	result, err := newRunner().Run(context.Background(), adapter, validBlueprint(), "org_1", "conn_1")
	require.NoError(t, err)

	require.Len(t, result.Created, 3)
	campaign, adSet, ad := result.Created[0], result.Created[1], result.Created[2]

	assert.Equal(t, domain.EntityCampaign, campaign.Type)
	assert.Equal(t, domain.EntityAdSet, adSet.Type)
	assert.Equal(t, domain.EntityAd, ad.Type)
	assert.Equal(t, campaign.ExternalID, adSet.ParentID)
	assert.Equal(t, adSet.ExternalID, ad.ParentID)
	assert.Empty(t, campaign.ParentID)

	assert.Equal(t, domain.LaunchTotals{Campaigns: 1, AdSets: 1, Ads: 1}, result.Totals)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "bp_1", result.BlueprintID)
	assert.False(t, result.CompletedAt.Before(result.StartedAt))
}

func TestRun_InvalidBlueprintIsFatalBeforeAuth(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	b := validBlueprint()
	b.Config = nil

	result, err := newRunner().Run(context.Background(), adapter, b, "org_1", "conn_1")

	require.Error(t, err)
	assert.Nil(t, result, "fatal failures return no partial result")
	assert.Empty(t, adapter.Created(), "nothing may be created after failed validation")
}

type authFailAdapter struct{ *platform.DryRunAdapter }

func (a authFailAdapter) EnsureAuth(ctx context.Context, orgID, connectionID string) error {
	return errors.New("token expired")
}

func TestRun_AuthFailureIsFatal(t *testing.T) {
	inner := platform.NewDryRun("meta")
	result, err := newRunner().Run(context.Background(), authFailAdapter{inner}, validBlueprint(), "org_1", "conn_1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Nil(t, result)
	assert.Empty(t, inner.Created())
}

func TestRun_CampaignFailureSkipsSubtree(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	adapter.FailOn = func(kind, name string) error {
		if kind == "campaign" {
			return errors.New("campaign rejected")
		}
		return nil
	}

	result, err := newRunner().Run(context.Background(), adapter, validBlueprint(), "org_1", "conn_1")
	require.NoError(t, err, "scoped failures never fail the run")

	assert.Empty(t, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "campaign rejected")
	assert.Equal(t, domain.LaunchTotals{}, result.Totals)
}

func TestRun_AdSetFailureSkipsOnlyItsAd(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	adapter.FailOn = func(kind, name string) error {
		if kind == "adset" {
			return errors.New("targeting invalid")
		}
		return nil
	}

	result, err := newRunner().Run(context.Background(), adapter, validBlueprint(), "org_1", "conn_1")
	require.NoError(t, err)

	// Campaign created, ad set failed, so no ad was attempted.
	assert.Equal(t, domain.LaunchTotals{Campaigns: 1}, result.Totals)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Entity, "US 25-45")
}

func TestRun_AdFailureRecordedWithoutAffectingParents(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	adapter.FailOn = func(kind, name string) error {
		if kind == "ad" {
			return errors.New("creative rejected")
		}
		return nil
	}

	result, err := newRunner().Run(context.Background(), adapter, validBlueprint(), "org_1", "conn_1")
	require.NoError(t, err)

	assert.Equal(t, domain.LaunchTotals{Campaigns: 1, AdSets: 1}, result.Totals)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "creative rejected")
}

func TestRun_AdNameCarriesVariantCreative(t *testing.T) {
	adapter := platform.NewDryRun("meta")
	_, err := newRunner().Run(context.Background(), adapter, validBlueprint(), "org_1", "conn_1")
	require.NoError(t, err)

	created := adapter.Created()
	require.Len(t, created, 3)
	assert.Equal(t, "ad", created[2].Fields["kind"])
}
