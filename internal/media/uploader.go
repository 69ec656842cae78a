// Package media uploads creative assets to the platform's media library:
// multipart image uploads and the start/transfer/finish resumable protocol
// for video, followed by readiness polling for asynchronous transcoding.
package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ignite/ad-launcher/internal/domain"
	"github.com/ignite/ad-launcher/internal/pkg/httpretry"
	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
	"github.com/ignite/ad-launcher/internal/pkg/retry"
	"github.com/ignite/ad-launcher/internal/platform/meta"
)

// GraphAPI is the slice of the platform client the pipeline drives.
type GraphAPI interface {
	UploadImage(ctx context.Context, accountID, fileName string, data []byte) (*meta.ImageUpload, error)
	StartVideoUpload(ctx context.Context, accountID string, totalSize int64) (*meta.UploadSession, error)
	TransferVideoChunk(ctx context.Context, accountID, sessionID string, startOffset int64, chunk []byte) (int64, error)
	FinishVideoUpload(ctx context.Context, accountID, sessionID, title string) error
	GetVideoStatus(ctx context.Context, videoID string) (*meta.VideoStatus, error)
	GetVideoThumbnails(ctx context.Context, videoID string) ([]meta.Thumbnail, error)
}

// ImageAsset is the stable handle of an uploaded or referenced image.
type ImageAsset struct {
	Hash string `json:"hash,omitempty"` // uploaded or pre-uploaded media
	ID   string `json:"id,omitempty"`   // media-library asset
}

// Identifier returns whichever handle is set, for ad-name annotation.
func (a ImageAsset) Identifier() string {
	if a.Hash != "" {
		return a.Hash
	}
	return a.ID
}

// VideoAsset is the stable handle of an uploaded or referenced video. After
// a fresh upload ThumbnailURL is empty; the caller resolves it via
// WaitForVideoReady + VideoThumbnail because transcoding can take far
// longer than a request should block for.
type VideoAsset struct {
	VideoID      string `json:"videoId"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// VideoUploadOptions tunes one video upload.
type VideoUploadOptions struct {
	Title string
	// Progress, when set, is called after every transferred chunk with the
	// bytes sent so far and the total. The pipeline has no other progress
	// side channel.
	Progress func(sent, total int64)
}

// Uploader runs one upload state machine per call; it holds no per-asset
// state, so one Uploader serves concurrent uploads.
type Uploader struct {
	api       GraphAPI
	accountID string
	cache     *Cache
	chunkSize int64
	readiness retry.Policy
	thumbnail retry.Policy
	fetch     func(ctx context.Context, url string) ([]byte, error)
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// Options tunes an Uploader. Zero values get production defaults.
type Options struct {
	ChunkSize       int64
	ReadinessPolicy retry.Policy
	ThumbnailPolicy retry.Policy
	Cache           *Cache
	Metrics         *metrics.Metrics
}

// NewUploader builds an Uploader for one ad account.
func NewUploader(api GraphAPI, accountID string, log *logger.Logger, opts Options) *Uploader {
	chunk := opts.ChunkSize
	if chunk == 0 {
		chunk = 10 * 1024 * 1024
	}
	readiness := opts.ReadinessPolicy
	if readiness.MaxAttempts == 0 {
		readiness = retry.Policy{MaxAttempts: 20, Delay: 3 * time.Second}
	}
	thumbnail := opts.ThumbnailPolicy
	if thumbnail.MaxAttempts == 0 {
		thumbnail = retry.Policy{MaxAttempts: 3, Delay: 2 * time.Second}
	}
	return &Uploader{
		api:       api,
		accountID: accountID,
		cache:     opts.Cache,
		chunkSize: chunk,
		readiness: readiness,
		thumbnail: thumbnail,
		fetch:     fetchURL,
		log:       log,
		metrics:   opts.Metrics,
	}
}

// SetFetch replaces the remote-URL fetcher, for tests.
func (u *Uploader) SetFetch(fetch func(ctx context.Context, url string) ([]byte, error)) {
	u.fetch = fetch
}

// ResolveImage turns an image asset reference into a stable handle,
// uploading only when the reference carries raw or fetchable media.
// Hosted and library references never touch the network.
func (u *Uploader) ResolveImage(ctx context.Context, ref domain.AssetReference) (*ImageAsset, error) {
	switch ref.Kind {
	case domain.AssetHosted:
		return &ImageAsset{Hash: ref.ID}, nil
	case domain.AssetLibrary:
		return &ImageAsset{ID: ref.ID}, nil
	case domain.AssetInline:
		key := "sha256:" + hashBytes(ref.Data)
		if hash, ok := u.cache.GetImageHash(ctx, key); ok {
			return &ImageAsset{Hash: hash}, nil
		}
		asset, err := u.uploadImageBytes(ctx, ref.Data, extFromMIME(ref.MIME))
		if err != nil {
			return nil, err
		}
		u.cache.SetImageHash(ctx, key, asset.Hash)
		return asset, nil
	case domain.AssetRemote:
		if hash, ok := u.cache.GetImageHash(ctx, ref.URL); ok {
			return &ImageAsset{Hash: hash}, nil
		}
		data, err := u.fetch(ctx, ref.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch image %s: %w", ref.URL, err)
		}
		asset, err := u.uploadImageBytes(ctx, data, ".jpg")
		if err != nil {
			return nil, err
		}
		u.cache.SetImageHash(ctx, ref.URL, asset.Hash)
		return asset, nil
	}
	return nil, fmt.Errorf("cannot resolve image from %q reference", ref.Kind)
}

func (u *Uploader) uploadImageBytes(ctx context.Context, data []byte, ext string) (*ImageAsset, error) {
	upload, err := u.api.UploadImage(ctx, u.accountID, "creative"+ext, data)
	if err != nil {
		u.count("image", "error")
		return nil, err
	}
	u.count("image", "success")
	u.addBytes(int64(len(data)))
	return &ImageAsset{Hash: upload.Hash}, nil
}

// UploadVideo runs the resumable upload state machine: start, transfer in
// fixed-size offset-tagged chunks, finish. Chunks are never reordered or
// skipped; transient HTTP failures are retried inside the client, not here.
// It returns as soon as finish succeeds, before transcoding completes.
func (u *Uploader) UploadVideo(ctx context.Context, ref domain.AssetReference, opts VideoUploadOptions) (*VideoAsset, error) {
	var data []byte
	switch ref.Kind {
	case domain.AssetHosted, domain.AssetLibrary:
		return &VideoAsset{VideoID: ref.ID}, nil
	case domain.AssetInline:
		data = ref.Data
	case domain.AssetRemote:
		fetched, err := u.fetch(ctx, ref.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch video %s: %w", ref.URL, err)
		}
		data = fetched
	default:
		return nil, fmt.Errorf("cannot resolve video from %q reference", ref.Kind)
	}

	total := int64(len(data))
	session, err := u.api.StartVideoUpload(ctx, u.accountID, total)
	if err != nil {
		u.count("video", "error")
		return nil, err
	}
	u.log.WithFields(logger.Fields{
		"video_id": session.VideoID,
		"bytes":    total,
	}).Info("video upload session started")

	offset := int64(0)
	for offset < total {
		end := offset + u.chunkSize
		if end > total {
			end = total
		}
		next, err := u.api.TransferVideoChunk(ctx, u.accountID, session.UploadSessionID, offset, data[offset:end])
		if err != nil {
			u.count("video", "error")
			return nil, err
		}
		if next <= offset {
			u.count("video", "error")
			return nil, fmt.Errorf("upload session %s did not advance past offset %d", session.UploadSessionID, offset)
		}
		offset = next
		if opts.Progress != nil {
			opts.Progress(offset, total)
		}
	}

	if err := u.api.FinishVideoUpload(ctx, u.accountID, session.UploadSessionID, opts.Title); err != nil {
		u.count("video", "error")
		return nil, err
	}
	u.count("video", "success")
	u.addBytes(total)

	// Thumbnail comes later, once transcoding finishes.
	return &VideoAsset{VideoID: session.VideoID}, nil
}

func (u *Uploader) count(kind, outcome string) {
	if u.metrics != nil {
		u.metrics.UploadsTotal.WithLabelValues(kind, outcome).Inc()
	}
}

func (u *Uploader) addBytes(n int64) {
	if u.metrics != nil {
		u.metrics.UploadBytes.Add(float64(n))
	}
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func extFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := httpretry.NewRetryClient(&http.Client{Timeout: 2 * time.Minute}, 3)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
