package bulk

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/ignite/ad-launcher/internal/creative"
	"github.com/ignite/ad-launcher/internal/domain"
)

// optimizationGoals maps the wizard's user-facing optimization event names to
// platform enums. Unknown names fall back to LINK_CLICKS.
var optimizationGoals = map[string]string{
	"Leads":              "LEAD_GENERATION",
	"Quality Leads":      "QUALITY_LEAD",
	"Conversions":        "OFFSITE_CONVERSIONS",
	"Landing Page Views": "LANDING_PAGE_VIEWS",
	"Link Clicks":        "LINK_CLICKS",
	"Reach":              "REACH",
	"Impressions":        "IMPRESSIONS",
	"ThruPlay":           "THRUPLAY",
}

func optimizationGoal(event string) string {
	if goal, ok := optimizationGoals[event]; ok {
		return goal
	}
	return "LINK_CLICKS"
}

// minorUnits converts a major-unit amount to the platform's integer minor
// units. This is the only place the x100 conversion happens. Rounding, not
// truncation: 19.99 carries a float error below 1999 and must not lose a cent.
func minorUnits(amount float64) string {
	return strconv.FormatInt(int64(math.Round(amount*100)), 10)
}

func budgetField(budgetType string) string {
	if budgetType == "lifetime" {
		return "lifetime_budget"
	}
	return "daily_budget"
}

// resolveStartTime turns the wizard's start spec into an ISO datetime. The
// "now" sentinel resolves at payload-construction time; an explicit date gets
// the given time-of-day, defaulting to noon.
func resolveStartTime(st domain.StartTime) string {
	if st.Now || st.Date == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	tod := st.TimeOfDay
	if tod == "" {
		tod = "12:00"
	}
	return fmt.Sprintf("%sT%s:00Z", st.Date, tod)
}

func buildCampaignFields(c domain.CampaignConfig) url.Values {
	fields := url.Values{}
	fields.Set("name", c.Name)
	fields.Set("objective", c.Objective)
	fields.Set("status", "PAUSED")
	fields.Set("buying_type", "AUCTION")

	cats := c.SpecialAdCategories
	if cats == nil {
		cats = []string{}
	}
	fields.Set("special_ad_categories", mustJSON(cats))

	if c.BudgetMode == domain.BudgetCBO {
		fields.Set(budgetField(c.BudgetType), minorUnits(c.BudgetAmount))
	}
	fields.Set("start_time", resolveStartTime(c.StartTime))
	if c.EndDate != "" {
		fields.Set("stop_time", fmt.Sprintf("%sT23:59:00Z", c.EndDate))
	}
	return fields
}

// geoKey is one keyed geo unit inside geo_locations.
type geoKey struct {
	Key string `json:"key"`
}

type geoLocations struct {
	Countries []string `json:"countries,omitempty"`
	Regions   []geoKey `json:"regions,omitempty"`
	Cities    []geoKey `json:"cities,omitempty"`
}

type idRef struct {
	ID string `json:"id"`
}

// targetingSpec is the full targeting payload of one ad set. Placement
// arrays come from the creative placement parser and are omitted when the
// wizard supplied no recognizable placement labels.
type targetingSpec struct {
	AgeMin             int                  `json:"age_min"`
	AgeMax             int                  `json:"age_max"`
	Genders            []int                `json:"genders,omitempty"`
	GeoLocations       geoLocations         `json:"geo_locations"`
	FlexibleSpec       []map[string][]idRef `json:"flexible_spec,omitempty"`
	CustomAudiences    []idRef              `json:"custom_audiences,omitempty"`
	PublisherPlatforms []string             `json:"publisher_platforms,omitempty"`
	FacebookPositions  []string             `json:"facebook_positions,omitempty"`
	InstagramPositions []string             `json:"instagram_positions,omitempty"`
}

func buildTargeting(t domain.AdSetTargeting) targetingSpec {
	spec := targetingSpec{AgeMin: t.AgeMin, AgeMax: t.AgeMax}

	for _, g := range t.Genders {
		switch g {
		case "male":
			spec.Genders = append(spec.Genders, 1)
		case "female":
			spec.Genders = append(spec.Genders, 2)
		}
	}

	for _, loc := range t.Locations {
		switch loc.Level {
		case "region":
			spec.GeoLocations.Regions = append(spec.GeoLocations.Regions, geoKey{Key: loc.Key})
		case "city":
			spec.GeoLocations.Cities = append(spec.GeoLocations.Cities, geoKey{Key: loc.Key})
		default:
			spec.GeoLocations.Countries = append(spec.GeoLocations.Countries, loc.Key)
		}
	}

	if t.AudienceType == domain.AudienceCustom {
		for _, id := range t.CustomAudienceIDs {
			spec.CustomAudiences = append(spec.CustomAudiences, idRef{ID: id})
		}
	} else if len(t.Interests) > 0 {
		interests := make([]idRef, 0, len(t.Interests))
		for _, in := range t.Interests {
			interests = append(interests, idRef{ID: in.ID})
		}
		spec.FlexibleSpec = []map[string][]idRef{{"interests": interests}}
	}

	placements := creative.ParsePlacements(t.Placements)
	if !placements.IsZero() {
		spec.PublisherPlatforms = placements.PublisherPlatforms
		spec.FacebookPositions = placements.FacebookPositions
		spec.InstagramPositions = placements.InstagramPositions
	}
	return spec
}

func buildAdSetFields(campaignID string, cfg domain.AdSetConfig, req domain.BulkLaunchRequest) url.Values {
	goal := optimizationGoal(cfg.OptimizationEvent)

	fields := url.Values{}
	fields.Set("name", cfg.Name)
	fields.Set("campaign_id", campaignID)
	fields.Set("status", "PAUSED")
	fields.Set("billing_event", "IMPRESSIONS")
	fields.Set("optimization_goal", goal)
	fields.Set("targeting", mustJSON(buildTargeting(cfg.Targeting)))

	if req.Campaign.BudgetMode == domain.BudgetABO {
		fields.Set(budgetField(req.Campaign.BudgetType), minorUnits(cfg.BudgetAmount))
	}

	po := creative.ResolvePromotedObject(creative.PromotedObjectParams{
		OptimizationGoal:   goal,
		Objective:          req.Campaign.Objective,
		PageID:             req.PageID,
		PixelID:            req.PixelID,
		ConversionEvent:    cfg.ConversionEvent,
		CustomConversionID: cfg.CustomConversion,
	})
	if po != nil {
		fields.Set("promoted_object", mustJSON(po))
	}
	return fields
}

// linkData is the single-image object_story_spec branch.
type linkData struct {
	Link         string                 `json:"link"`
	Message      string                 `json:"message,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Description  string                 `json:"description,omitempty"`
	ImageHash    string                 `json:"image_hash,omitempty"`
	CallToAction *creative.CallToAction `json:"call_to_action,omitempty"`
}

// videoData is the single-video object_story_spec branch.
type videoData struct {
	VideoID         string                 `json:"video_id"`
	ImageURL        string                 `json:"image_url,omitempty"`
	Title           string                 `json:"title,omitempty"`
	Message         string                 `json:"message,omitempty"`
	LinkDescription string                 `json:"link_description,omitempty"`
	CallToAction    *creative.CallToAction `json:"call_to_action,omitempty"`
}

type objectStorySpec struct {
	PageID         string     `json:"page_id"`
	InstagramActor string     `json:"instagram_actor_id,omitempty"`
	LinkData       *linkData  `json:"link_data,omitempty"`
	VideoData      *videoData `json:"video_data,omitempty"`
}

// destinationLink resolves the link an ad points at. Lead-form and deeplink
// destinations carry their target inside the call-to-action value; the
// story-spec link falls back to the page so the payload stays valid.
func destinationLink(dest domain.Destination, pageID string) string {
	if dest.Kind == domain.DestWebsite && dest.URL != "" {
		return dest.URL
	}
	return "https://facebook.com/" + pageID
}

// buildCreativeFields assembles the adcreative payload: an asset-feed spec
// when feed and story resolved to distinct assets, the plain single-asset
// story spec otherwise.
func buildCreativeFields(ad domain.AdConfig, req domain.BulkLaunchRequest, feed, story creative.ResolvedAsset) url.Values {
	cta := creative.BuildCallToAction(ad.CallToAction, ad.Destination)
	link := destinationLink(ad.Destination, req.PageID)
	adCopy := creative.AdCopy{
		PrimaryText: ad.PrimaryText,
		Headline:    ad.Headline,
		Description: ad.Description,
	}

	fields := url.Values{}
	fields.Set("name", ad.Name+" Creative")

	spec := objectStorySpec{PageID: req.PageID, InstagramActor: req.InstagramID}

	if feedSpec := creative.BuildAssetFeedSpec(feed, story, adCopy, link, cta.Type); feedSpec != nil {
		fields.Set("object_story_spec", mustJSON(spec))
		fields.Set("asset_feed_spec", mustJSON(feedSpec))
		return fields
	}

	if feed.VideoID != "" {
		spec.VideoData = &videoData{
			VideoID:         feed.VideoID,
			ImageURL:        feed.ThumbnailURL,
			Title:           ad.Headline,
			Message:         ad.PrimaryText,
			LinkDescription: ad.Description,
			CallToAction:    &cta,
		}
	} else {
		spec.LinkData = &linkData{
			Link:         link,
			Message:      ad.PrimaryText,
			Name:         ad.Headline,
			Description:  ad.Description,
			ImageHash:    feed.ImageHash,
			CallToAction: &cta,
		}
	}
	fields.Set("object_story_spec", mustJSON(spec))
	return fields
}

func buildAdFields(adSetID, name, creativeID string) url.Values {
	fields := url.Values{}
	fields.Set("name", name)
	fields.Set("adset_id", adSetID)
	fields.Set("creative", mustJSON(idRef{ID: creativeID}))
	fields.Set("status", "PAUSED")
	return fields
}

// annotateAdName tags the remote ad name with its format and asset
// identifier for operator traceability in the platform UI.
func annotateAdName(ad domain.AdConfig, feed creative.ResolvedAsset) string {
	if ad.IsVideo {
		return fmt.Sprintf("(Video) %s [video_id=%s]", ad.Name, feed.VideoID)
	}
	return fmt.Sprintf("(Static) %s [image_id=%s]", ad.Name, feed.ImageHash)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
