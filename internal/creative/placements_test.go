package creative

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlacements_PlatformSpecific(t *testing.T) {
	spec := ParsePlacements([]string{"Facebook Feed", "Instagram Stories"})

	assert.Equal(t, []string{"facebook", "instagram"}, spec.PublisherPlatforms)
	assert.Equal(t, []string{"feed"}, spec.FacebookPositions)
	assert.Equal(t, []string{"story"}, spec.InstagramPositions)
}

func TestParsePlacements_GenericExpandsToBoth(t *testing.T) {
	spec := ParsePlacements([]string{"Reels"})

	assert.Equal(t, []string{"facebook", "instagram"}, spec.PublisherPlatforms)
	assert.Equal(t, []string{"facebook_reels"}, spec.FacebookPositions)
	assert.Equal(t, []string{"reels"}, spec.InstagramPositions)
}

func TestParsePlacements_CaseInsensitiveAndDeduped(t *testing.T) {
	spec := ParsePlacements([]string{"FACEBOOK FEED", "facebook feed", "Facebook Marketplace"})

	assert.Equal(t, []string{"facebook"}, spec.PublisherPlatforms)
	assert.Equal(t, []string{"feed", "marketplace"}, spec.FacebookPositions)
	assert.Empty(t, spec.InstagramPositions)
}

func TestParsePlacements_EmptyPositionsOmittedFromJSON(t *testing.T) {
	spec := ParsePlacements([]string{"Instagram Explore"})

	raw, err := json.Marshal(spec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "instagram_positions")
	assert.NotContains(t, decoded, "facebook_positions", "empty arrays must be omitted, not sent as []")
}

func TestParsePlacements_UnknownLabelsIgnored(t *testing.T) {
	spec := ParsePlacements([]string{"Carrier Pigeon"})
	assert.True(t, spec.IsZero())
}
