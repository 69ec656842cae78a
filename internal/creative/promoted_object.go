// Package creative builds the platform-specific payload fragments a launch
// needs: promoted objects, call-to-action encoding, placement mapping, and
// per-placement asset customization. Everything here is pure; no I/O.
package creative

// PromotedObjectParams carries everything promoted-object resolution looks at.
type PromotedObjectParams struct {
	OptimizationGoal   string
	Objective          string
	PageID             string
	PixelID            string
	ConversionEvent    string // explicit, caller-supplied event name
	CustomConversionID string
}

// PromotedObject is the payload fragment declaring what an ad set optimizes
// toward. A nil return means no promoted object is attached.
type PromotedObject struct {
	PageID             string `json:"page_id,omitempty"`
	PixelID            string `json:"pixel_id,omitempty"`
	CustomEventType    string `json:"custom_event_type,omitempty"`
	CustomEventStr     string `json:"custom_event_str,omitempty"`
	CustomConversionID string `json:"custom_conversion_id,omitempty"`
}

// standardEvents are the platform's built-in conversion event types. Anything
// else is sent as custom_event_type OTHER with the name in custom_event_str.
var standardEvents = map[string]bool{
	"LEAD":                  true,
	"PURCHASE":              true,
	"COMPLETE_REGISTRATION": true,
	"ADD_TO_CART":           true,
	"INITIATE_CHECKOUT":     true,
	"SUBSCRIBE":             true,
	"CONTACT":               true,
	"SUBMIT_APPLICATION":    true,
	"SCHEDULE":              true,
	"START_TRIAL":           true,
}

// ResolvePromotedObject applies the fixed-priority resolution rules. The
// branches are mutually exclusive and evaluated in this order:
//
//  1. Lead-gen goals always promote the page, pixel or not.
//  2. Conversion goals with a pixel promote the pixel plus an event.
//  3. Traffic/awareness goals promote only what the caller explicitly
//     supplied, never an inferred event.
//  4. OUTCOME_LEADS with no pixel falls back to the page.
//  5. Otherwise nothing is attached.
func ResolvePromotedObject(p PromotedObjectParams) *PromotedObject {
	switch p.OptimizationGoal {
	case "QUALITY_LEAD", "LEAD_GENERATION":
		return &PromotedObject{PageID: p.PageID}

	case "OFFSITE_CONVERSIONS", "LANDING_PAGE_VIEWS":
		if p.PixelID != "" {
			po := &PromotedObject{PixelID: p.PixelID}
			switch {
			case p.ConversionEvent != "" && standardEvents[p.ConversionEvent]:
				po.CustomEventType = p.ConversionEvent
			case p.ConversionEvent != "":
				po.CustomEventType = "OTHER"
				po.CustomEventStr = p.ConversionEvent
			case p.Objective == "OUTCOME_LEADS":
				po.CustomEventType = "LEAD"
			}
			if p.CustomConversionID != "" {
				po.CustomConversionID = p.CustomConversionID
			}
			return po
		}

	case "LINK_CLICKS", "REACH", "IMPRESSIONS":
		if p.ConversionEvent == "" && p.CustomConversionID == "" {
			return nil
		}
		if p.PixelID != "" {
			po := &PromotedObject{PixelID: p.PixelID}
			if p.ConversionEvent != "" {
				if standardEvents[p.ConversionEvent] {
					po.CustomEventType = p.ConversionEvent
				} else {
					po.CustomEventType = "OTHER"
					po.CustomEventStr = p.ConversionEvent
				}
			}
			if p.CustomConversionID != "" {
				po.CustomConversionID = p.CustomConversionID
			}
			return po
		}
		if p.CustomConversionID != "" {
			return &PromotedObject{CustomConversionID: p.CustomConversionID}
		}
		return nil
	}

	if p.Objective == "OUTCOME_LEADS" && p.PixelID == "" {
		return &PromotedObject{PageID: p.PageID}
	}
	return nil
}
