package upload

import "github.com/synheart-ai/synheart-core/internal/hsimodel"

// SDKVersion is sent as X-Synheart-SDK-Version on every request.
const SDKVersion = "1.0.0"

// Subject identifies the pseudonymous subject snapshots belong to.
type Subject struct {
	SubjectType string `json:"subject_type"`
	SubjectID   string `json:"subject_id"`
}

// UploadRequest is the canonical upload body: a subject plus a batch
// of snapshots.
type UploadRequest struct {
	Subject   Subject               `json:"subject"`
	Snapshots []hsimodel.HSI10Payload `json:"snapshots"`
}

// UploadResponse is the decoded 2xx response body.
type UploadResponse struct {
	Status     string `json:"status"`
	SnapshotID string `json:"snapshot_id,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// errorResponse is the decoded error body shared by all 4xx failures.
type errorResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	RetryAfterS int    `json:"retry_after_s"`
}
