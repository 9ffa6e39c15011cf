package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/horarium/timetable-api/internal/dto"
	apperrors "github.com/horarium/timetable-api/pkg/errors"
	"github.com/horarium/timetable-api/pkg/storage"
)

func newExportFixture(t *testing.T) (ExportService, string) {
	t.Helper()
	schedules, catalog := newScheduleFixture(t)

	resp, err := schedules.Generate(context.Background(), generateRequest(catalog.ID))
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test_secret", time.Minute)

	svc := NewExportService(schedules, NewMetricsService(), store, signer,
		ExportServiceConfig{Workers: 1, MaxRetries: 1}, zap.NewNop())
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)

	return svc, resp.RunID
}

func waitForJob(t *testing.T, svc ExportService, jobID string) *dto.ExportJobResponse {
	t.Helper()
	var job *dto.ExportJobResponse
	require.Eventually(t, func() bool {
		var err error
		job, err = svc.GetJob(jobID)
		if err != nil {
			return false
		}
		return job.Status == ExportStatusCompleted || job.Status == ExportStatusFailed
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestExportServiceCSVJobLifecycle(t *testing.T) {
	svc, runID := newExportFixture(t)

	created, err := svc.CreateJob(runID, dto.CreateExportRequest{Format: "csv", Combination: 0})
	require.NoError(t, err)
	assert.Equal(t, ExportStatusPending, created.Status)
	assert.Empty(t, created.DownloadURL)

	job := waitForJob(t, svc, created.JobID)
	require.Equal(t, ExportStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	require.Contains(t, job.DownloadURL, "token=")

	token := job.DownloadURL[strings.Index(job.DownloadURL, "token=")+len("token="):]
	f, name, err := svc.OpenByToken(token)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, name, ".csv")
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), "day,start,end,course,section,teacher")
	assert.Contains(t, string(data), "Algebra")
}

func TestExportServicePDFJobProducesDocument(t *testing.T) {
	svc, runID := newExportFixture(t)

	created, err := svc.CreateJob(runID, dto.CreateExportRequest{Format: "pdf", Combination: 0})
	require.NoError(t, err)

	job := waitForJob(t, svc, created.JobID)
	require.Equal(t, ExportStatusCompleted, job.Status)

	token := job.DownloadURL[strings.Index(job.DownloadURL, "token=")+len("token="):]
	f, name, err := svc.OpenByToken(token)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, name, ".pdf")
	header := make([]byte, 4)
	_, err = io.ReadFull(f, header)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(header))
}

func TestExportServiceRejectsUnknownRun(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.CreateJob("missing", dto.CreateExportRequest{Format: "csv"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestExportServiceRejectsBadCombinationIndex(t *testing.T) {
	svc, runID := newExportFixture(t)

	_, err := svc.CreateJob(runID, dto.CreateExportRequest{Format: "csv", Combination: 42})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound.Code, apperrors.FromError(err).Code)
}

func TestExportServiceGetJobUnknown(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.GetJob("missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestExportServiceOpenByTokenRejectsGarbage(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, _, err := svc.OpenByToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}
