package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/service"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/response"
)

// AttendanceHandler serves the reconciled attendance views.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MonthOverview returns the plan-vs-actual month for a project.
// GET /api/v1/attendance/overview?project_id=xxx&year=2026&month=3
func (h *AttendanceHandler) MonthOverview(c *gin.Context) {
	var req dto.AttendanceOverviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.attendanceSvc.MonthOverview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 15001, "project not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
