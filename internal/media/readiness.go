package media

import (
	"context"

	"github.com/ignite/ad-launcher/internal/pkg/logger"
)

// WaitForVideoReady polls the video's processing status until it is safe to
// reference in a creative. It returns false rather than an error when the
// video errored or did not become ready within the attempt budget; callers
// treat that as a retryable condition, not a crash.
//
// Per-poll priority: a platform error status is terminal false; an
// incomplete uploading phase forces a wait before processing is even
// considered; ready plus complete processing is terminal true.
func (u *Uploader) WaitForVideoReady(ctx context.Context, videoID string) bool {
	ready := false
	attempts := 0

	done, err := u.readiness.Poll(ctx, func(ctx context.Context) (bool, error) {
		attempts++
		status, err := u.api.GetVideoStatus(ctx, videoID)
		if err != nil {
			// Transient fetch failure: burn the attempt, keep polling.
			u.log.WithError(err).WithField("video_id", videoID).Warn("video status fetch failed")
			return false, nil
		}

		if status.VideoStatus == "error" || status.ProcessingPhase.Status == "error" {
			u.log.WithField("video_id", videoID).Error("video processing failed")
			return true, nil // terminal, ready stays false
		}
		if status.UploadingPhase.Status != "complete" && status.UploadingPhase.Status != "" {
			return false, nil
		}
		if status.VideoStatus == "ready" && status.ProcessingPhase.Status == "complete" {
			ready = true
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		// Context cancellation between attempts.
		u.log.WithError(err).WithField("video_id", videoID).Warn("video readiness poll aborted")
		return false
	}
	if !done {
		u.log.WithFields(logger.Fields{
			"video_id": videoID,
			"attempts": attempts,
		}).Warn("video not ready within poll budget")
	}
	return ready
}

// VideoThumbnail fetches the video's thumbnail, preferring the one the
// platform flags preferred and falling back to the first. It returns ""
// rather than an error if none appears within its attempt budget.
func (u *Uploader) VideoThumbnail(ctx context.Context, videoID string) string {
	url := ""
	_, _ = u.thumbnail.Poll(ctx, func(ctx context.Context) (bool, error) {
		thumbs, err := u.api.GetVideoThumbnails(ctx, videoID)
		if err != nil {
			u.log.WithError(err).WithField("video_id", videoID).Warn("thumbnail fetch failed")
			return false, nil
		}
		if len(thumbs) == 0 {
			return false, nil
		}
		url = thumbs[0].URI
		for _, t := range thumbs {
			if t.IsPreferred {
				url = t.URI
				break
			}
		}
		return true, nil
	})
	return url
}
