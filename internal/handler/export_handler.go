package handler

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/horarium/timetable-api/internal/dto"
	"github.com/horarium/timetable-api/internal/service"
	appErrors "github.com/horarium/timetable-api/pkg/errors"
	"github.com/horarium/timetable-api/pkg/response"
)

// ExportHandler exposes the asynchronous export endpoints. A nil service
// means the pipeline is disabled by configuration.
type ExportHandler struct {
	service service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Queue an export of one ranked combination
// @Tags Exports
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param payload body dto.CreateExportRequest true "Export parameters"
// @Success 202 {object} response.Envelope
// @Router /schedules/runs/{id}/exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrExportDisabled)
		return
	}

	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	job, err := h.service.CreateJob(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Get godoc
// @Summary Get export job status
// @Tags Exports
// @Produce json
// @Param jobId path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/jobs/{jobId} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrExportDisabled)
		return
	}

	job, err := h.service.GetJob(c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a completed export with a signed token
// @Tags Exports
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrExportDisabled)
		return
	}

	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "download token required"))
		return
	}

	f, relPath, err := h.service.OpenByToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "export artifact unreadable"))
		return
	}

	filename := path.Base(relPath)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), contentType(filename), f, nil)
}

func contentType(filename string) string {
	switch path.Ext(filename) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
