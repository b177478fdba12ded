package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/services"
	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/utils"
)

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportWords downloads the word bank as csv or xlsx
// @Summary Export words
// @Tags export
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /export/words [get]
func (h *ExportHandler) ExportWords(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatCSV)

	h.LogRequest(c, "Exporting words", "format", format)

	data, filename, err := h.exportService.ExportWords(c.Request.Context(), format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, format, filename, data)
}

// ExportStatistics downloads all student statistics as csv or xlsx
// @Summary Export statistics
// @Tags export
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /export/statistics [get]
func (h *ExportHandler) ExportStatistics(c *gin.Context) {
	format := c.DefaultQuery("format", services.FormatCSV)

	h.LogRequest(c, "Exporting statistics", "format", format)

	data, filename, err := h.exportService.ExportStatistics(c.Request.Context(), format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, format, filename, data)
}

func (h *ExportHandler) sendFile(c *gin.Context, format, filename string, data []byte) {
	contentType := exportContentTypes[format]
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
