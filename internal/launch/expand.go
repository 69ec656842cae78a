// Package launch implements the simple blueprint launch path: expansion of
// a compact blueprint into explicit parameters and the tree-walk runner
// that drives a platform adapter through campaign, ad set, and ad creation.
package launch

import "github.com/ignite/ad-launcher/internal/domain"

// ExtractValueProps derives the value propositions a blueprint expands
// into. Today this is exactly the creative headline; it is a package-level
// variable so a future one-to-many expansion can replace it without
// changing ExpandBlueprint's signature.
var ExtractValueProps = func(cfg *domain.BlueprintConfig) []string {
	return []string{cfg.Creative.Headline}
}

// ExpandBlueprint turns a blueprint config into explicit expansion
// parameters. Deterministic and pure; no I/O.
func ExpandBlueprint(cfg *domain.BlueprintConfig) domain.ExpansionParams {
	budgetType := cfg.BudgetType
	if budgetType == "" {
		budgetType = domain.BudgetDaily
	}
	return domain.ExpansionParams{
		ValueProps: ExtractValueProps(cfg),
		Audiences:  []domain.Audience{cfg.TargetAudience},
		Budget:     domain.Budget{Amount: cfg.Budget, Type: budgetType},
		Creative:   cfg.Creative,
	}
}

// CreativeVariant builds a per-value-prop variant of the base creative.
// Only headline and description change; every other field is carried over
// untouched.
func CreativeVariant(base domain.Creative, valueProp string) domain.Creative {
	variant := base
	variant.Headline = valueProp + " - " + base.Headline
	variant.Description = valueProp + ": " + base.Description
	return variant
}

// ExpansionSize is the entity count a set of expansion params produces.
type ExpansionSize struct {
	Campaigns int `json:"campaigns"`
	AdSets    int `json:"adsets"`
	Ads       int `json:"ads"`
}

// CalculateExpansionSize counts what a launch of params would create: one
// campaign per value prop, one ad set per value prop and audience, and one
// ad per ad set.
func CalculateExpansionSize(params domain.ExpansionParams) ExpansionSize {
	v := len(params.ValueProps)
	a := len(params.Audiences)
	return ExpansionSize{
		Campaigns: v,
		AdSets:    v * a,
		Ads:       v * a,
	}
}
