package domain

// BudgetType selects how the platform interprets a budget amount.
type BudgetType string

const (
	BudgetDaily    BudgetType = "DAILY"
	BudgetLifetime BudgetType = "LIFETIME"
)

// AgeRange bounds the target age for an audience. Platforms clamp to 13-65.
type AgeRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Audience describes one targetable slice of people.
type Audience struct {
	Name      string   `json:"name"`
	Age       AgeRange `json:"age"`
	Locations []string `json:"locations"`
	Interests []string `json:"interests"`
}

// Creative is the audience-independent ad content carried by a blueprint.
type Creative struct {
	Headline     string `json:"headline"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl,omitempty"`
	CallToAction string `json:"callToAction"`
}

// BlueprintConfig holds the launch parameters of a blueprint.
type BlueprintConfig struct {
	Budget         float64    `json:"budget"`
	BudgetType     BudgetType `json:"budgetType"`
	DurationDays   int        `json:"duration"`
	TargetAudience Audience   `json:"targetAudience"`
	Creative       Creative   `json:"creative"`
}

// Blueprint is a reusable campaign template: one budget, one audience
// description, one creative. The core never mutates it.
type Blueprint struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Platform string           `json:"platform"`
	Config   *BlueprintConfig `json:"config"`
}

// Budget pairs an amount in major currency units with its type.
type Budget struct {
	Amount float64    `json:"amount"`
	Type   BudgetType `json:"type"`
}

// ExpansionParams is the explicit form a blueprint expands into. The cross
// product valueProps x audiences defines the ad-set count.
type ExpansionParams struct {
	ValueProps []string   `json:"valueProps"`
	Audiences  []Audience `json:"audiences"`
	Budget     Budget     `json:"budget"`
	Creative   Creative   `json:"creative"`
}
