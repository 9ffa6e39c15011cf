package dto

import "time"

// CreateExportRequest asks for an asynchronous export of one combination
// from a retained run.
type CreateExportRequest struct {
	Format      string `json:"format" validate:"required,oneof=csv pdf"`
	Combination int    `json:"combination" validate:"gte=0"`
}

// ExportJobResponse reports the state of an export job. DownloadURL is set
// once the job completes.
type ExportJobResponse struct {
	JobID       string     `json:"jobId"`
	RunID       string     `json:"runId"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
