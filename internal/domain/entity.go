package domain

import "time"

// EntityType identifies one level of the campaign tree.
type EntityType string

const (
	EntityCampaign EntityType = "campaign"
	EntityAdSet    EntityType = "adset"
	EntityAd       EntityType = "ad"
)

// CreatedEntity records one successful remote creation. ParentID links an
// adset to its campaign and an ad to its adset, so the slice forms a tree.
// Entries are written exactly once and never mutated afterwards.
type CreatedEntity struct {
	Type       EntityType        `json:"type"`
	ExternalID string            `json:"externalId"`
	Name       string            `json:"name"`
	ParentID   string            `json:"parentId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// EntityError records a scoped failure against the entity that produced it.
type EntityError struct {
	Entity string `json:"entity"`
	Error  string `json:"error"`
}

// LaunchTotals counts created entities per type.
type LaunchTotals struct {
	Campaigns int `json:"campaigns"`
	AdSets    int `json:"adsets"`
	Ads       int `json:"ads"`
}

// LaunchResult is the final report of one launch run. It is owned exclusively
// by the runner for the duration of the run and finalized once at the end.
type LaunchResult struct {
	BlueprintID string          `json:"blueprintId"`
	Platform    string          `json:"platform"`
	Created     []CreatedEntity `json:"created"`
	Totals      LaunchTotals    `json:"totalCreated"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt time.Time       `json:"completedAt"`
	DurationMs  int64           `json:"durationMs"`
	Errors      []EntityError   `json:"errors"`
}

// AdMetrics is one row of delivery performance for a remote entity.
type AdMetrics struct {
	EntityID    string  `json:"entity_id"`
	EntityType  string  `json:"entity_type"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	Conversions int64   `json:"conversions"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	DateStart   string  `json:"date_start"`
	DateStop    string  `json:"date_stop"`
}
