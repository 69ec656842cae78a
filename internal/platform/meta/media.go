package meta

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// UploadImage multipart-uploads raw image bytes to the account's ad image
// library and returns the stable hash Meta assigns.
func (c *Client) UploadImage(ctx context.Context, accountID, fileName string, data []byte) (*ImageUpload, error) {
	var resp imageUploadResponse
	err := c.PostMultipart(ctx, accountID+"/adimages", nil, "filename", fileName, data, &resp)
	if err != nil {
		return nil, fmt.Errorf("upload ad image: %w", err)
	}
	for _, img := range resp.Images {
		return &img, nil
	}
	return nil, fmt.Errorf("upload ad image: empty response for %s", fileName)
}

// StartVideoUpload opens a resumable upload session for totalSize bytes.
func (c *Client) StartVideoUpload(ctx context.Context, accountID string, totalSize int64) (*UploadSession, error) {
	fields := url.Values{}
	fields.Set("upload_phase", "start")
	fields.Set("file_size", strconv.FormatInt(totalSize, 10))

	var session UploadSession
	if err := c.Post(ctx, accountID+"/advideos", fields, &session); err != nil {
		return nil, fmt.Errorf("start video upload: %w", err)
	}
	if session.UploadSessionID == "" || session.VideoID == "" {
		return nil, fmt.Errorf("start video upload: incomplete session response")
	}
	return &session, nil
}

// TransferVideoChunk sends one chunk tagged with its start offset and
// returns the offset the server expects next.
func (c *Client) TransferVideoChunk(ctx context.Context, accountID, sessionID string, startOffset int64, chunk []byte) (int64, error) {
	fields := map[string]string{
		"upload_phase":      "transfer",
		"upload_session_id": sessionID,
		"start_offset":      strconv.FormatInt(startOffset, 10),
	}

	var resp struct {
		StartOffset string `json:"start_offset"`
	}
	err := c.PostMultipart(ctx, accountID+"/advideos", fields, "video_file_chunk", "chunk.bin", chunk, &resp)
	if err != nil {
		return 0, fmt.Errorf("transfer chunk at offset %d: %w", startOffset, err)
	}
	next, err := strconv.ParseInt(resp.StartOffset, 10, 64)
	if err != nil {
		// Some API versions omit the echo; advance by what we sent.
		return startOffset + int64(len(chunk)), nil
	}
	return next, nil
}

// FinishVideoUpload closes the session. The platform then begins
// asynchronous transcoding; the video is not yet safe to reference.
func (c *Client) FinishVideoUpload(ctx context.Context, accountID, sessionID, title string) error {
	fields := url.Values{}
	fields.Set("upload_phase", "finish")
	fields.Set("upload_session_id", sessionID)
	if title != "" {
		fields.Set("title", title)
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.Post(ctx, accountID+"/advideos", fields, &resp); err != nil {
		return fmt.Errorf("finish video upload: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("finish video upload: platform reported failure")
	}
	return nil
}

// GetVideoStatus fetches the current processing status of a video.
func (c *Client) GetVideoStatus(ctx context.Context, videoID string) (*VideoStatus, error) {
	params := url.Values{}
	params.Set("fields", "status")

	var resp videoStatusResponse
	if err := c.Get(ctx, videoID, params, &resp); err != nil {
		return nil, fmt.Errorf("get video status: %w", err)
	}
	return &resp.Status, nil
}

// GetVideoThumbnails fetches the thumbnail edge of a video.
func (c *Client) GetVideoThumbnails(ctx context.Context, videoID string) ([]Thumbnail, error) {
	var resp listResponse[Thumbnail]
	if err := c.Get(ctx, videoID+"/thumbnails", nil, &resp); err != nil {
		return nil, fmt.Errorf("get video thumbnails: %w", err)
	}
	return resp.Data, nil
}
