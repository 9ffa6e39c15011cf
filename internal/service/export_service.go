package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/dto"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
	"github.com/horarium/timetable-api/pkg/export"
	"github.com/horarium/timetable-api/pkg/jobs"
	"github.com/horarium/timetable-api/pkg/storage"
)

// Export job lifecycle states.
const (
	ExportStatusPending    = "pending"
	ExportStatusProcessing = "processing"
	ExportStatusCompleted  = "completed"
	ExportStatusFailed     = "failed"
)

// ExportService renders run combinations to downloadable files through a
// background worker queue. Artifacts are fetched with signed tokens.
type ExportService interface {
	Start(ctx context.Context)
	Stop()
	CreateJob(runID string, req dto.CreateExportRequest) (*dto.ExportJobResponse, error)
	GetJob(jobID string) (*dto.ExportJobResponse, error)
	OpenByToken(token string) (*os.File, string, error)
}

type exportJob struct {
	ID          string
	RunID       string
	Format      string
	Combination int
	Status      string
	Error       string
	FilePath    string
	Token       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type exportService struct {
	schedules ScheduleService
	metrics   MetricsService
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	queue     *jobs.Queue
	validate  *validator.Validate
	logger    *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*exportJob
}

// ExportServiceConfig carries the worker pool knobs.
type ExportServiceConfig struct {
	Workers    int
	MaxRetries int
}

// NewExportService wires the export pipeline.
func NewExportService(schedules ScheduleService, metrics MetricsService, store *storage.LocalStorage, signer *storage.SignedURLSigner, cfg ExportServiceConfig, logger *zap.Logger) ExportService {
	s := &exportService{
		schedules: schedules,
		metrics:   metrics,
		store:     store,
		signer:    signer,
		validate:  validator.New(),
		logger:    logger,
		jobs:      make(map[string]*exportJob),
	}
	s.queue = jobs.NewQueue("exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

func (s *exportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

func (s *exportService) Stop() {
	s.queue.Stop()
}

func (s *exportService) CreateJob(runID string, req dto.CreateExportRequest) (*dto.ExportJobResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid export payload")
	}
	// Validates both the run and the combination index up front so the
	// client hears about bad input synchronously.
	if _, err := s.schedules.CombinationBlocks(runID, req.Combination); err != nil {
		return nil, err
	}

	job := &exportJob{
		ID:          uuid.NewString(),
		RunID:       runID,
		Format:      req.Format,
		Combination: req.Combination,
		Status:      ExportStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	resp := s.toResponse(job)

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: req.Format, Payload: job.ID}); err != nil {
		s.mu.Lock()
		delete(s.jobs, job.ID)
		s.mu.Unlock()
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "export queue unavailable")
	}
	return resp, nil
}

func (s *exportService) GetJob(jobID string) (*dto.ExportJobResponse, error) {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	var snapshot exportJob
	if ok {
		snapshot = *job
	}
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.toResponse(&snapshot), nil
}

func (s *exportService) OpenByToken(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[jobID]
	completed := ok && job.Status == ExportStatusCompleted
	s.mu.RUnlock()
	if !completed {
		return nil, "", apperrors.ErrNotFound
	}

	f, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrNotFound.Code, apperrors.ErrNotFound.Status, "export artifact missing")
	}
	return f, relPath, nil
}

// process is the queue handler: it renders, stores and signs one artifact.
func (s *exportService) process(_ context.Context, qj jobs.Job) error {
	jobID, _ := qj.Payload.(string)

	s.mu.Lock()
	job, ok := s.jobs[jobID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	job.Status = ExportStatusProcessing
	runID, format, index := job.RunID, job.Format, job.Combination
	s.mu.Unlock()

	data, ext, err := s.render(runID, format, index)
	if err != nil {
		s.fail(jobID, err)
		return err
	}

	relPath := fmt.Sprintf("%s/%s.%s", runID, jobID, ext)
	if _, err := s.store.Save(relPath, data); err != nil {
		s.fail(jobID, err)
		return err
	}
	token, _, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		s.fail(jobID, err)
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[jobID]; ok {
		job.Status = ExportStatusCompleted
		job.FilePath = relPath
		job.Token = token
		job.CompletedAt = &now
	}
	s.mu.Unlock()

	s.metrics.ObserveExport(format)
	s.logger.Info("export completed",
		zap.String("job_id", jobID),
		zap.String("run_id", runID),
		zap.String("format", format),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *exportService) render(runID, format string, index int) ([]byte, string, error) {
	blocks, err := s.schedules.CombinationBlocks(runID, index)
	if err != nil {
		return nil, "", err
	}
	run, err := s.schedules.GetRun(runID)
	if err != nil {
		return nil, "", err
	}

	timetable := export.Timetable{
		Title:   fmt.Sprintf("Schedule option %d", index+1),
		Score:   blocks.Score,
		Metrics: run.Combinations[index].Metrics,
		Blocks:  blocks.Blocks,
	}

	switch format {
	case "csv":
		data, err := export.RenderCSV(timetable)
		return data, "csv", err
	case "pdf":
		data, err := export.RenderPDF(timetable)
		return data, "pdf", err
	}
	return nil, "", fmt.Errorf("unsupported export format %q", format)
}

func (s *exportService) fail(jobID string, err error) {
	now := time.Now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[jobID]; ok {
		job.Status = ExportStatusFailed
		job.Error = err.Error()
		job.CompletedAt = &now
	}
	s.mu.Unlock()
}

func (s *exportService) toResponse(job *exportJob) *dto.ExportJobResponse {
	resp := &dto.ExportJobResponse{
		JobID:       job.ID,
		RunID:       job.RunID,
		Format:      job.Format,
		Status:      job.Status,
		Error:       job.Error,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
	}
	if job.Status == ExportStatusCompleted && job.Token != "" {
		resp.DownloadURL = "/api/v1/exports/download?token=" + job.Token
	}
	return resp
}
