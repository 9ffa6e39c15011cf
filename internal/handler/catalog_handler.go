package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horarium/timetable-api/internal/dto"
	"github.com/horarium/timetable-api/internal/service"
	appErrors "github.com/horarium/timetable-api/pkg/errors"
	"github.com/horarium/timetable-api/pkg/response"
)

// CatalogHandler exposes catalog ingestion and listing endpoints.
type CatalogHandler struct {
	service        service.CatalogService
	maxUploadBytes int64
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc service.CatalogService, maxUploadBytes int64) *CatalogHandler {
	return &CatalogHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// Upload godoc
// @Summary Ingest a section catalog CSV
// @Description Accepts a multipart upload with a "file" part and column mapping fields.
// @Tags Catalogs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog CSV"
// @Param section formData string true "Section column header"
// @Param course formData string true "Course column header"
// @Param teacher formData string true "Teacher column header"
// @Param schedule formData string false "Schedule column header"
// @Success 201 {object} response.Envelope
// @Router /catalogs [post]
func (h *CatalogHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.UploadCatalogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid catalog mapping"))
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing catalog file"))
		return
	}
	defer file.Close()

	catalog, expiresAt, err := h.service.UploadCSV(file, req.Mapping())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCatalogResponse(catalog, expiresAt))
}

// Get godoc
// @Summary Get catalog summary
// @Tags Catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	catalog, expiresAt, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewCatalogResponse(catalog, expiresAt), nil)
}

// Courses godoc
// @Summary List catalog courses with section counts
// @Tags Catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{id}/courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	courses, err := h.service.Courses(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// Teachers godoc
// @Summary List distinct teachers in a catalog
// @Tags Catalogs
// @Produce json
// @Param id path string true "Catalog ID"
// @Success 200 {object} response.Envelope
// @Router /catalogs/{id}/teachers [get]
func (h *CatalogHandler) Teachers(c *gin.Context) {
	teachers, err := h.service.Teachers(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}
