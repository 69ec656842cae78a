package creative

import "strings"

// PlacementSpec is the folded publisher_platforms / positions breakdown.
// Empty position slices are omitted from the final payload.
type PlacementSpec struct {
	PublisherPlatforms []string `json:"publisher_platforms,omitempty"`
	FacebookPositions  []string `json:"facebook_positions,omitempty"`
	InstagramPositions []string `json:"instagram_positions,omitempty"`
}

// IsZero reports whether no placement was recognized at all, in which case
// the payload omits the breakdown and the platform decides (Advantage+).
func (p PlacementSpec) IsZero() bool {
	return len(p.PublisherPlatforms) == 0
}

// ParsePlacements folds free-text placement labels ("Facebook Feed",
// "Instagram Stories", "Reels") into a placement spec. Matching is
// case-insensitive by platform + position substring; generic labels with no
// platform expand to both Facebook and Instagram equivalents.
func ParsePlacements(labels []string) PlacementSpec {
	var spec PlacementSpec
	platforms := map[string]bool{}

	addFB := func(pos string) {
		platforms["facebook"] = true
		spec.FacebookPositions = appendUnique(spec.FacebookPositions, pos)
	}
	addIG := func(pos string) {
		platforms["instagram"] = true
		spec.InstagramPositions = appendUnique(spec.InstagramPositions, pos)
	}

	for _, label := range labels {
		l := strings.ToLower(label)
		facebook := strings.Contains(l, "facebook")
		instagram := strings.Contains(l, "instagram")
		generic := !facebook && !instagram

		switch {
		case strings.Contains(l, "feed"):
			if facebook || generic {
				addFB("feed")
			}
			if instagram || generic {
				addIG("stream")
			}
		case strings.Contains(l, "stories") || strings.Contains(l, "story"):
			if facebook || generic {
				addFB("story")
			}
			if instagram || generic {
				addIG("story")
			}
		case strings.Contains(l, "reels") || strings.Contains(l, "reel"):
			if facebook || generic {
				addFB("facebook_reels")
			}
			if instagram || generic {
				addIG("reels")
			}
		case strings.Contains(l, "marketplace"):
			addFB("marketplace")
		case strings.Contains(l, "search"):
			addFB("search")
		case strings.Contains(l, "explore"):
			addIG("explore")
		}
	}

	// Deterministic platform order: facebook before instagram.
	if platforms["facebook"] {
		spec.PublisherPlatforms = append(spec.PublisherPlatforms, "facebook")
	}
	if platforms["instagram"] {
		spec.PublisherPlatforms = append(spec.PublisherPlatforms, "instagram")
	}
	return spec
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
