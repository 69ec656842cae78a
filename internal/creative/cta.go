package creative

import "github.com/ignite/ad-launcher/internal/domain"

// ctaEnum maps human CTA labels to platform enums. Unknown labels pass
// through unchanged so new platform values work without a code change.
var ctaEnum = map[string]string{
	"Shop Now":     "SHOP_NOW",
	"Learn More":   "LEARN_MORE",
	"Sign Up":      "SIGN_UP",
	"Subscribe":    "SUBSCRIBE",
	"Contact Us":   "CONTACT_US",
	"Download":     "DOWNLOAD",
	"Get Offer":    "GET_OFFER",
	"Get Quote":    "GET_QUOTE",
	"Book Now":     "BOOK_TRAVEL",
	"Apply Now":    "APPLY_NOW",
	"Donate Now":   "DONATE_NOW",
	"Watch More":   "WATCH_MORE",
	"Send Message": "MESSAGE_PAGE",
}

// CTAValue is the destination-dependent value of a call to action. Exactly
// one field is populated, matching the destination kind.
type CTAValue struct {
	Link          string `json:"link,omitempty"`
	LeadGenFormID string `json:"lead_gen_form_id,omitempty"`
	AppLink       string `json:"app_link,omitempty"`
}

// CallToAction is the encoded call_to_action payload fragment.
type CallToAction struct {
	Type  string   `json:"type"`
	Value CTAValue `json:"value"`
}

// BuildCallToAction encodes a human label plus a tagged destination.
func BuildCallToAction(label string, dest domain.Destination) CallToAction {
	ctaType, ok := ctaEnum[label]
	if !ok {
		ctaType = label
	}

	cta := CallToAction{Type: ctaType}
	switch dest.Kind {
	case domain.DestLeadForm:
		cta.Value.LeadGenFormID = dest.LeadFormID
	case domain.DestDeeplink:
		cta.Value.AppLink = dest.Deeplink
	default:
		cta.Value.Link = dest.URL
	}
	return cta
}
