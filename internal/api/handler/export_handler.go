package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/service"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule downloads the project month as an Excel workbook.
// GET /api/v1/export/schedule?project_id=xxx&year=2026&month=3
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	var req dto.ScheduleQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	buf, filename, err := h.exportSvc.ExportScheduleXLSX(c.Request.Context(), req.ProjectID, req.Year, req.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportEmployeeCalendar downloads one employee's month as an ICS feed.
// GET /api/v1/export/calendar?project_id=xxx&employee_id=yyy&year=2026&month=3
func (h *ExportHandler) ExportEmployeeCalendar(c *gin.Context) {
	var req dto.CalendarExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	buf, filename, err := h.exportSvc.ExportEmployeeICS(c.Request.Context(), req.ProjectID, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 15001, "project not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 15002, "employee not found")
	case errors.Is(err, service.ErrExportNoEmployees):
		response.NotFound(c, 16001, "no employees active on the project for that month")
	case errors.Is(err, service.ErrExportNoCells):
		response.NotFound(c, 16002, "no assignments for that employee in the month")
	default:
		response.InternalError(c)
	}
}

func writeDownload(c *gin.Context, contentType, filename string, body []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, body)
}
