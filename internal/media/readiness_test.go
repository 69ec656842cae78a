package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/ad-launcher/internal/platform/meta"
)

func processing() meta.VideoStatus {
	return meta.VideoStatus{
		VideoStatus:     "processing",
		UploadingPhase:  meta.PhaseStatus{Status: "complete"},
		ProcessingPhase: meta.PhaseStatus{Status: "in_progress"},
	}
}

func ready() meta.VideoStatus {
	return meta.VideoStatus{
		VideoStatus:     "ready",
		UploadingPhase:  meta.PhaseStatus{Status: "complete"},
		ProcessingPhase: meta.PhaseStatus{Status: "complete"},
	}
}

func TestWaitForVideoReady_ReadyOnThirdPoll(t *testing.T) {
	api := &fakeGraph{statusSeq: []meta.VideoStatus{processing(), processing(), ready()}}
	u := newTestUploader(t, api, nil)

	ok := u.WaitForVideoReady(context.Background(), "vid_1")

	assert.True(t, ok)
	assert.Equal(t, 3, api.statusCalls, "must return on exactly the third poll")
}

func TestWaitForVideoReady_ExhaustsBudgetWithoutError(t *testing.T) {
	api := &fakeGraph{statusSeq: []meta.VideoStatus{processing()}}
	u := newTestUploader(t, api, nil)

	ok := u.WaitForVideoReady(context.Background(), "vid_1")

	assert.False(t, ok)
	assert.Equal(t, 20, api.statusCalls)
}

func TestWaitForVideoReady_ErrorStatusIsTerminal(t *testing.T) {
	api := &fakeGraph{statusSeq: []meta.VideoStatus{
		processing(),
		{VideoStatus: "error", UploadingPhase: meta.PhaseStatus{Status: "complete"}},
	}}
	u := newTestUploader(t, api, nil)

	ok := u.WaitForVideoReady(context.Background(), "vid_1")

	assert.False(t, ok)
	assert.Equal(t, 2, api.statusCalls, "error status must stop polling immediately")
}

func TestWaitForVideoReady_IncompleteUploadWaitsBeforeProcessingCheck(t *testing.T) {
	// processing_phase claims complete but bytes are still uploading; must wait.
	uploading := meta.VideoStatus{
		VideoStatus:     "ready",
		UploadingPhase:  meta.PhaseStatus{Status: "in_progress"},
		ProcessingPhase: meta.PhaseStatus{Status: "complete"},
	}
	api := &fakeGraph{statusSeq: []meta.VideoStatus{uploading, ready()}}
	u := newTestUploader(t, api, nil)

	ok := u.WaitForVideoReady(context.Background(), "vid_1")

	assert.True(t, ok)
	assert.Equal(t, 2, api.statusCalls)
}

func TestVideoThumbnail_PrefersFlaggedThumbnail(t *testing.T) {
	api := &fakeGraph{thumbs: [][]meta.Thumbnail{{
		{URI: "https://cdn/first.jpg"},
		{URI: "https://cdn/preferred.jpg", IsPreferred: true},
	}}}
	u := newTestUploader(t, api, nil)

	assert.Equal(t, "https://cdn/preferred.jpg", u.VideoThumbnail(context.Background(), "vid_1"))
}

func TestVideoThumbnail_FallsBackToFirst(t *testing.T) {
	api := &fakeGraph{thumbs: [][]meta.Thumbnail{{
		{URI: "https://cdn/a.jpg"},
		{URI: "https://cdn/b.jpg"},
	}}}
	u := newTestUploader(t, api, nil)

	assert.Equal(t, "https://cdn/a.jpg", u.VideoThumbnail(context.Background(), "vid_1"))
}

func TestVideoThumbnail_EmptyAfterBudget(t *testing.T) {
	api := &fakeGraph{}
	u := newTestUploader(t, api, nil)

	assert.Equal(t, "", u.VideoThumbnail(context.Background(), "vid_1"))
	assert.Equal(t, 3, api.thumbCalls)
}
