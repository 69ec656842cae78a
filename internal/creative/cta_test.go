package creative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/ad-launcher/internal/domain"
)

func TestBuildCallToAction_KnownLabel(t *testing.T) {
	cta := BuildCallToAction("Shop Now", domain.Destination{
		Kind: domain.DestWebsite,
		URL:  "https://example.com/shop",
	})

	assert.Equal(t, "SHOP_NOW", cta.Type)
	assert.Equal(t, "https://example.com/shop", cta.Value.Link)
	assert.Empty(t, cta.Value.LeadGenFormID)
	assert.Empty(t, cta.Value.AppLink)
}

func TestBuildCallToAction_UnknownLabelPassesThrough(t *testing.T) {
	cta := BuildCallToAction("PLAY_GAME", domain.Destination{Kind: domain.DestWebsite, URL: "https://x.co"})
	assert.Equal(t, "PLAY_GAME", cta.Type)
}

func TestBuildCallToAction_LeadForm(t *testing.T) {
	cta := BuildCallToAction("Sign Up", domain.Destination{
		Kind:       domain.DestLeadForm,
		LeadFormID: "form_42",
	})

	assert.Equal(t, "SIGN_UP", cta.Type)
	assert.Equal(t, "form_42", cta.Value.LeadGenFormID)
	assert.Empty(t, cta.Value.Link)
}

func TestBuildCallToAction_Deeplink(t *testing.T) {
	cta := BuildCallToAction("Learn More", domain.Destination{
		Kind:     domain.DestDeeplink,
		Deeplink: "myapp://offer/7",
	})

	assert.Equal(t, "LEARN_MORE", cta.Type)
	assert.Equal(t, "myapp://offer/7", cta.Value.AppLink)
	assert.Empty(t, cta.Value.Link)
}
