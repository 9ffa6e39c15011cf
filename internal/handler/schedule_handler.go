package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/horarium/timetable-api/internal/dto"
	"github.com/horarium/timetable-api/internal/models"
	"github.com/horarium/timetable-api/internal/service"
	appErrors "github.com/horarium/timetable-api/pkg/errors"
	"github.com/horarium/timetable-api/pkg/response"
)

const (
	defaultRunPageSize = 20
	maxRunPageSize     = 100
)

// ScheduleHandler exposes the combination engine endpoints.
type ScheduleHandler struct {
	service service.ScheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Enumerate and rank conflict-free schedule combinations
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation parameters"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetRun godoc
// @Summary Read a retained run with pagination over the ranked combinations
// @Tags Schedules
// @Produce json
// @Param id path string true "Run ID"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules/runs/{id} [get]
func (h *ScheduleHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, pageSize := paginationParams(c)
	total := len(run.Combinations)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	resp := dto.RunResponse{
		RunID:        run.ID,
		CatalogID:    run.CatalogID,
		Policy:       run.Policy,
		Combinations: run.Combinations[start:end],
		Stats:        run.Stats,
	}
	response.JSON(c, http.StatusOK, resp, &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	})
}

// Blocks godoc
// @Summary Get the meeting blocks of one ranked combination
// @Tags Schedules
// @Produce json
// @Param id path string true "Run ID"
// @Param index path int true "Combination index (0-based, ranking order)"
// @Success 200 {object} response.Envelope
// @Router /schedules/runs/{id}/combinations/{index}/blocks [get]
func (h *ScheduleHandler) Blocks(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "combination index must be an integer"))
		return
	}

	blocks, err := h.service.CombinationBlocks(c.Param("id"), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}

func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultRunPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultRunPageSize
	}
	if pageSize > maxRunPageSize {
		pageSize = maxRunPageSize
	}
	return page, pageSize
}
