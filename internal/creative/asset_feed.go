package creative

// ResolvedAsset is a creative asset after media resolution: an image hash or
// a video ID, never both.
type ResolvedAsset struct {
	ImageHash    string
	VideoID      string
	ThumbnailURL string
}

// IsZero reports whether no asset was resolved.
func (a ResolvedAsset) IsZero() bool { return a.ImageHash == "" && a.VideoID == "" }

// Same reports whether two resolved assets are the same underlying media.
func (a ResolvedAsset) Same(b ResolvedAsset) bool {
	return a.ImageHash == b.ImageHash && a.VideoID == b.VideoID
}

// AdCopy is the shared text of an ad.
type AdCopy struct {
	PrimaryText string
	Headline    string
	Description string
}

// AssetLabel names an asset so customization rules can select it.
type AssetLabel struct {
	Name string `json:"name"`
}

// ImageAsset is one labeled image of an asset feed.
type ImageAsset struct {
	Hash     string       `json:"hash"`
	AdLabels []AssetLabel `json:"adlabels"`
}

// VideoAsset is one labeled video of an asset feed.
type VideoAsset struct {
	VideoID      string       `json:"video_id"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	AdLabels     []AssetLabel `json:"adlabels"`
}

// TextAsset is one labeled body or title.
type TextAsset struct {
	Text     string       `json:"text"`
	AdLabels []AssetLabel `json:"adlabels"`
}

// LinkURLAsset is one labeled destination URL.
type LinkURLAsset struct {
	WebsiteURL string       `json:"website_url"`
	AdLabels   []AssetLabel `json:"adlabels"`
}

// CustomizationSpec scopes a customization rule to placements. The age
// bounds are the platform-wide 13-65 defaults, present on every rule.
type CustomizationSpec struct {
	AgeMin             int      `json:"age_min"`
	AgeMax             int      `json:"age_max"`
	PublisherPlatforms []string `json:"publisher_platforms,omitempty"`
	FacebookPositions  []string `json:"facebook_positions,omitempty"`
	InstagramPositions []string `json:"instagram_positions,omitempty"`
	MessengerPositions []string `json:"messenger_positions,omitempty"`
}

// CustomizationRule selects which labeled assets serve a placement slice.
type CustomizationRule struct {
	CustomizationSpec CustomizationSpec `json:"customization_spec"`
	ImageLabel        *AssetLabel       `json:"image_label,omitempty"`
	VideoLabel        *AssetLabel       `json:"video_label,omitempty"`
	BodyLabel         AssetLabel        `json:"body_label"`
	TitleLabel        AssetLabel        `json:"title_label"`
	LinkURLLabel      AssetLabel        `json:"link_url_label"`
	Priority          int               `json:"priority"`
}

// AssetFeedSpec is the placement-asset-customization creative payload: the
// labeled asset pool plus the rules that route placements to assets.
type AssetFeedSpec struct {
	Images                  []ImageAsset        `json:"images,omitempty"`
	Videos                  []VideoAsset        `json:"videos,omitempty"`
	Bodies                  []TextAsset         `json:"bodies"`
	Titles                  []TextAsset         `json:"titles"`
	Descriptions            []TextAsset         `json:"descriptions,omitempty"`
	LinkURLs                []LinkURLAsset      `json:"link_urls"`
	AdFormats               []string            `json:"ad_formats"`
	CallToActionTypes       []string            `json:"call_to_action_types,omitempty"`
	AssetCustomizationRules []CustomizationRule `json:"asset_customization_rules"`
}

var (
	feedLabel  = AssetLabel{Name: "feed_asset"}
	storyLabel = AssetLabel{Name: "story_asset"}
	bodyLabel  = AssetLabel{Name: "body_all"}
	titleLabel = AssetLabel{Name: "title_all"}
	linkLabel  = AssetLabel{Name: "link_all"}
)

// BuildAssetFeedSpec builds a two-rule PAC spec: rule 1 (priority 1) routes
// story, reel, and search placements to the story asset; rule 2 (priority 2)
// is the unlabeled fallback selecting the feed asset. When feed and story
// resolve to the same underlying asset it returns nil and the caller uses
// the single-asset path.
func BuildAssetFeedSpec(feed, story ResolvedAsset, adCopy AdCopy, linkURL, ctaType string) *AssetFeedSpec {
	if story.IsZero() || feed.Same(story) {
		return nil
	}

	spec := &AssetFeedSpec{
		Bodies:   []TextAsset{{Text: adCopy.PrimaryText, AdLabels: []AssetLabel{bodyLabel}}},
		Titles:   []TextAsset{{Text: adCopy.Headline, AdLabels: []AssetLabel{titleLabel}}},
		LinkURLs: []LinkURLAsset{{WebsiteURL: linkURL, AdLabels: []AssetLabel{linkLabel}}},
	}
	if adCopy.Description != "" {
		spec.Descriptions = []TextAsset{{Text: adCopy.Description, AdLabels: []AssetLabel{{Name: "desc_all"}}}}
	}
	if ctaType != "" {
		spec.CallToActionTypes = []string{ctaType}
	}

	storyRule := CustomizationRule{
		CustomizationSpec: CustomizationSpec{
			AgeMin:             13,
			AgeMax:             65,
			PublisherPlatforms: []string{"facebook", "instagram", "messenger"},
			FacebookPositions:  []string{"story", "facebook_reels", "search"},
			InstagramPositions: []string{"story", "reels"},
			MessengerPositions: []string{"story"},
		},
		BodyLabel:    bodyLabel,
		TitleLabel:   titleLabel,
		LinkURLLabel: linkLabel,
		Priority:     1,
	}
	feedRule := CustomizationRule{
		CustomizationSpec: CustomizationSpec{AgeMin: 13, AgeMax: 65},
		BodyLabel:         bodyLabel,
		TitleLabel:        titleLabel,
		LinkURLLabel:      linkLabel,
		Priority:          2,
	}

	if feed.VideoID != "" || story.VideoID != "" {
		spec.AdFormats = []string{"SINGLE_VIDEO"}
		spec.Videos = []VideoAsset{
			{VideoID: feed.VideoID, ThumbnailURL: feed.ThumbnailURL, AdLabels: []AssetLabel{feedLabel}},
			{VideoID: story.VideoID, ThumbnailURL: story.ThumbnailURL, AdLabels: []AssetLabel{storyLabel}},
		}
		storyRule.VideoLabel = &storyLabel
		feedRule.VideoLabel = &feedLabel
	} else {
		spec.AdFormats = []string{"SINGLE_IMAGE"}
		spec.Images = []ImageAsset{
			{Hash: feed.ImageHash, AdLabels: []AssetLabel{feedLabel}},
			{Hash: story.ImageHash, AdLabels: []AssetLabel{storyLabel}},
		}
		storyRule.ImageLabel = &storyLabel
		feedRule.ImageLabel = &feedLabel
	}

	spec.AssetCustomizationRules = []CustomizationRule{storyRule, feedRule}
	return spec
}
