package domain

import "time"

// RemoteEntity is what a platform adapter returns from a creation call: the
// remote ID plus the fields the platform echoed back.
type RemoteEntity struct {
	ID        string         `json:"id"`
	Platform  string         `json:"platform"`
	CreatedAt time.Time      `json:"createdAt"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// CampaignInput is the adapter-level campaign creation request.
type CampaignInput struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Status    string `json:"status"`
	Budget    Budget `json:"budget"`
}

// AdSetInput is the adapter-level ad-set creation request. CampaignID is
// required; creation fails without it.
type AdSetInput struct {
	CampaignID string   `json:"campaignId"`
	Name       string   `json:"name"`
	Audience   Audience `json:"audience"`
	Budget     Budget   `json:"budget"`
}

// AdInput is the adapter-level ad creation request. AdSetID is required.
type AdInput struct {
	AdSetID  string   `json:"adSetId"`
	Name     string   `json:"name"`
	Creative Creative `json:"creative"`
}

// MetricsScope selects what GetMetrics reads: one entity at one level.
type MetricsScope struct {
	Level string `json:"level"` // account | campaign | adset | ad
	ID    string `json:"id"`
}
