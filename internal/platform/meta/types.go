package meta

import "fmt"

// APIError wraps a Graph API error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Subcode int    `json:"error_subcode"`
}

func (e *APIError) Error() string {
	if e.Subcode != 0 {
		return fmt.Sprintf("meta api error %d (subcode %d): %s", e.Code, e.Subcode, e.Message)
	}
	return fmt.Sprintf("meta api error %d: %s", e.Code, e.Message)
}

// errorEnvelope is the {"error": {...}} wrapper Graph returns on failure.
type errorEnvelope struct {
	Err *APIError `json:"error"`
}

// CreateResponse is the minimal body of a successful creation POST.
type CreateResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success,omitempty"`
}

// ImageUpload is the per-file entry of an adimages upload response.
type ImageUpload struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
}

// imageUploadResponse wraps {"images": {"<filename>": {hash, url}}}.
type imageUploadResponse struct {
	Images map[string]ImageUpload `json:"images"`
}

// UploadSession is the resumable video upload session state. It lives only
// for the duration of one chunked upload.
type UploadSession struct {
	VideoID         string `json:"video_id"`
	UploadSessionID string `json:"upload_session_id"`
	StartOffset     string `json:"start_offset"`
	EndOffset       string `json:"end_offset"`
}

// PhaseStatus is one phase of asynchronous video processing.
type PhaseStatus struct {
	Status string `json:"status"` // not_started | in_progress | complete | error
}

// VideoStatus is the polled readiness state of an uploaded video.
type VideoStatus struct {
	VideoStatus     string      `json:"video_status"` // processing | ready | error
	UploadingPhase  PhaseStatus `json:"uploading_phase"`
	ProcessingPhase PhaseStatus `json:"processing_phase"`
	PublishingPhase PhaseStatus `json:"publishing_phase"`
}

// videoStatusResponse wraps the status field of GET /{video_id}?fields=status.
type videoStatusResponse struct {
	Status VideoStatus `json:"status"`
	ID     string      `json:"id"`
}

// Thumbnail is one entry of a video's thumbnail edge.
type Thumbnail struct {
	URI         string `json:"uri"`
	IsPreferred bool   `json:"is_preferred"`
}

// InsightRow is one row of the insights edge.
type InsightRow struct {
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	CTR         string `json:"ctr"`
	CPC         string `json:"cpc"`
	DateStart   string `json:"date_start"`
	DateStop    string `json:"date_stop"`
	Actions     []struct {
		ActionType string `json:"action_type"`
		Value      string `json:"value"`
	} `json:"actions,omitempty"`
}

// listResponse wraps paged list edges.
type listResponse[T any] struct {
	Data []T `json:"data"`
}
