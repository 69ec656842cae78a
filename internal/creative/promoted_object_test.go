package creative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePromotedObject_LeadGoalsAlwaysPromotePage(t *testing.T) {
	for _, goal := range []string{"QUALITY_LEAD", "LEAD_GENERATION"} {
		po := ResolvePromotedObject(PromotedObjectParams{
			OptimizationGoal: goal,
			PageID:           "page_1",
			PixelID:          "pixel_1", // pixel presence must not matter
		})
		require.NotNil(t, po, goal)
		assert.Equal(t, "page_1", po.PageID)
		assert.Empty(t, po.PixelID)
	}
}

func TestResolvePromotedObject_ConversionsWithPixel(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "OFFSITE_CONVERSIONS",
		PixelID:          "pixel_1",
		ConversionEvent:  "PURCHASE",
	})
	require.NotNil(t, po)
	assert.Equal(t, "pixel_1", po.PixelID)
	assert.Equal(t, "PURCHASE", po.CustomEventType)
	assert.Empty(t, po.CustomEventStr)
}

func TestResolvePromotedObject_ConversionsWithCustomEvent(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "LANDING_PAGE_VIEWS",
		PixelID:          "pixel_1",
		ConversionEvent:  "QuizCompleted",
	})
	require.NotNil(t, po)
	assert.Equal(t, "OTHER", po.CustomEventType)
	assert.Equal(t, "QuizCompleted", po.CustomEventStr)
}

func TestResolvePromotedObject_LeadsObjectiveDefaultsLeadEvent(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "OFFSITE_CONVERSIONS",
		Objective:        "OUTCOME_LEADS",
		PixelID:          "pixel_1",
	})
	require.NotNil(t, po)
	assert.Equal(t, "LEAD", po.CustomEventType)
}

func TestResolvePromotedObject_TrafficGoalsNeverInfer(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "LINK_CLICKS",
		PageID:           "page_1",
		PixelID:          "pixel_1",
	})
	assert.Nil(t, po, "LINK_CLICKS with no explicit event must attach nothing")

	po = ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal:   "REACH",
		CustomConversionID: "cc_9",
	})
	require.NotNil(t, po)
	assert.Equal(t, "cc_9", po.CustomConversionID)
}

func TestResolvePromotedObject_LeadsFallbackWithoutPixel(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "THRUPLAY",
		Objective:        "OUTCOME_LEADS",
		PageID:           "page_1",
	})
	require.NotNil(t, po)
	assert.Equal(t, "page_1", po.PageID)
}

func TestResolvePromotedObject_NoMatch(t *testing.T) {
	po := ResolvePromotedObject(PromotedObjectParams{
		OptimizationGoal: "THRUPLAY",
		Objective:        "OUTCOME_ENGAGEMENT",
	})
	assert.Nil(t, po)
}
