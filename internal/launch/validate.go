package launch

import (
	"errors"
	"strings"

	"github.com/ignite/ad-launcher/internal/domain"
)

// ValidateBlueprint is the synchronous pre-flight check run before any
// remote call, EnsureAuth included. It has no side effects; a nil return
// means the blueprint is launchable.
func ValidateBlueprint(b domain.Blueprint) error {
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("blueprint must have a name")
	}
	if strings.TrimSpace(b.Platform) == "" {
		return errors.New("blueprint must have a platform")
	}
	if b.Config == nil {
		return errors.New("blueprint must have a config")
	}
	if b.Config.Budget <= 0 {
		return errors.New("blueprint must have a valid budget")
	}
	creative := b.Config.Creative
	if strings.TrimSpace(creative.Headline) == "" || strings.TrimSpace(creative.Description) == "" {
		return errors.New("blueprint must have a valid creative (headline and description)")
	}
	if len(b.Config.TargetAudience.Locations) == 0 {
		return errors.New("blueprint must have at least one target location")
	}
	return nil
}
