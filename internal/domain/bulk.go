package domain

// BudgetMode selects where the budget lives in the campaign tree.
type BudgetMode string

const (
	// BudgetCBO puts the budget on the campaign (Campaign Budget Optimization).
	BudgetCBO BudgetMode = "CBO"
	// BudgetABO puts a budget on each ad set (Ad Set Budget Optimization).
	BudgetABO BudgetMode = "ABO"
)

// StartTime resolves either to the literal "now" or to an explicit date with
// an optional time-of-day (defaulting to 12:00).
type StartTime struct {
	Now       bool   `json:"now"`
	Date      string `json:"date,omitempty"`      // YYYY-MM-DD
	TimeOfDay string `json:"timeOfDay,omitempty"` // HH:MM, default 12:00
}

// CampaignConfig is the root of the wizard-assembled launch tree.
type CampaignConfig struct {
	Name                string     `json:"name"`
	Objective           string     `json:"objective"` // e.g. OUTCOME_LEADS, OUTCOME_TRAFFIC
	BudgetMode          BudgetMode `json:"budgetMode"`
	BudgetType          string     `json:"budgetType"` // daily | lifetime
	BudgetAmount        float64    `json:"budgetAmount"`
	StartTime           StartTime  `json:"startTime"`
	EndDate             string     `json:"endDate,omitempty"`
	SpecialAdCategories []string   `json:"specialAdCategories,omitempty"`
}

// GeoLocation is one geographic targeting unit already classified by level.
type GeoLocation struct {
	Level string `json:"level"` // country | region | city
	Key   string `json:"key"`
	Name  string `json:"name,omitempty"`
}

// Interest is one flexible-spec interest node.
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// AudienceType selects between interest targeting and saved custom audiences.
type AudienceType string

const (
	AudienceInterests AudienceType = "interests"
	AudienceCustom    AudienceType = "custom"
)

// AdSetTargeting is the targeting owned by one ad-set config.
type AdSetTargeting struct {
	AgeMin            int           `json:"ageMin"`
	AgeMax            int           `json:"ageMax"`
	Genders           []string      `json:"genders,omitempty"` // "male", "female"; empty means all
	Locations         []GeoLocation `json:"locations"`
	AudienceType      AudienceType  `json:"audienceType"`
	Interests         []Interest    `json:"interests,omitempty"`
	CustomAudienceIDs []string      `json:"customAudienceIds,omitempty"`
	Placements        []string      `json:"placements,omitempty"` // free-text labels, e.g. "Instagram Stories"
}

// AdSetConfig is one ad set plus the ads underneath it.
type AdSetConfig struct {
	Name              string         `json:"name"`
	BudgetAmount      float64        `json:"budgetAmount,omitempty"` // used in ABO mode only
	OptimizationEvent string         `json:"optimizationEvent"`      // user-facing name, e.g. "Leads"
	ConversionEvent   string         `json:"conversionEvent,omitempty"`
	CustomConversion  string         `json:"customConversionId,omitempty"`
	Targeting         AdSetTargeting `json:"targeting"`
	Ads               []AdConfig     `json:"ads"`
}

// DestinationKind discriminates where an ad sends people.
type DestinationKind string

const (
	DestWebsite  DestinationKind = "website"
	DestLeadForm DestinationKind = "lead_form"
	DestDeeplink DestinationKind = "deeplink"
)

// Destination is a tagged destination; exactly the field implied by Kind is set.
type Destination struct {
	Kind       DestinationKind `json:"kind"`
	URL        string          `json:"url,omitempty"`
	LeadFormID string          `json:"leadFormId,omitempty"`
	Deeplink   string          `json:"deeplink,omitempty"`
}

// AdConfig is one ad: copy, destination, and creative media. StoryMedia is
// optional; when present and distinct from FeedMedia the creative is built
// with per-placement asset customization.
type AdConfig struct {
	Name         string      `json:"name"`
	PrimaryText  string      `json:"primaryText"`
	Headline     string      `json:"headline"`
	Description  string      `json:"description,omitempty"`
	CallToAction string      `json:"callToAction"`
	Destination  Destination `json:"destination"`
	FeedMedia    string      `json:"feedMedia"`
	StoryMedia   string      `json:"storyMedia,omitempty"`
	IsVideo      bool        `json:"isVideo,omitempty"`
}

// BulkLaunchRequest is the full input to the bulk orchestrator, assembled by
// the wizard front end and validated before it reaches the core.
type BulkLaunchRequest struct {
	OrgID        string        `json:"orgId"`
	ConnectionID string        `json:"connectionId"`
	AdAccountID  string        `json:"adAccountId"` // internal record ID
	PageID       string        `json:"pageId"`
	InstagramID  string        `json:"instagramActorId,omitempty"`
	PixelID      string        `json:"pixelId,omitempty"`
	Campaign     CampaignConfig `json:"campaign"`
	AdSets       []AdSetConfig  `json:"adSets"`
}

// BulkResults aggregates everything one bulk launch created, plus its scoped
// failures. Success is derived, never set independently.
type BulkResults struct {
	Campaign *CreatedEntity  `json:"campaign,omitempty"`
	AdSets   []CreatedEntity `json:"adSets"`
	Ads      []CreatedEntity `json:"ads"`
	Errors   []EntityError   `json:"errors"`
}

// BulkLaunchResult is the top-level bulk launch report.
type BulkLaunchResult struct {
	Success    bool        `json:"success"`
	CampaignID string      `json:"campaignId,omitempty"`
	Results    BulkResults `json:"results"`
}

// AccessCredential is the platform credential resolved once per launch and
// read-only for the remainder of the invocation.
type AccessCredential struct {
	ID          string
	OrgID       string
	Platform    string
	AccessToken string
}

// AdAccount is the internal record of a remote ad account.
type AdAccount struct {
	ID         string // internal record ID
	ExternalID string // remote account ID, e.g. act_123
	OrgID      string
	Name       string
	Currency   string
}
