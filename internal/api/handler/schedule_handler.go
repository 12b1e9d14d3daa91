package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/service"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/response"
)

// ScheduleHandler serves the monthly grid endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetSchedule returns the full month view of a project.
// GET /api/v1/schedule?project_id=xxx&year=2026&month=3
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var req dto.ScheduleQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.scheduleSvc.LoadSchedule(c.Request.Context(), req.ProjectID, req.Year, req.Month)
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

// GetCell returns one employee-day cell.
// GET /api/v1/schedule/cell?project_id=xxx&employee_id=yyy&date=2026-03-10
func (h *ScheduleHandler) GetCell(c *gin.Context) {
	var req dto.CellQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	if req.EmployeeID == "" {
		response.BadRequest(c, 10001, "employee_id is required")
		return
	}

	result, err := h.scheduleSvc.GetCell(c.Request.Context(), &req)
	if err != nil {
		h.handleCellError(c, err)
		return
	}

	response.OK(c, result)
}

// GetJoker returns the floating substitute cell of one day.
// GET /api/v1/schedule/joker?project_id=xxx&date=2026-03-10
func (h *ScheduleHandler) GetJoker(c *gin.Context) {
	var req dto.CellQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.scheduleSvc.GetJoker(c.Request.Context(), &req)
	if err != nil {
		h.handleCellError(c, err)
		return
	}

	response.OK(c, result)
}

// PrimaryAction applies one context-free click to a cell row.
// POST /api/v1/schedule/cell/action
func (h *ScheduleHandler) PrimaryAction(c *gin.Context) {
	var req dto.PrimaryActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	if !req.Joker && req.EmployeeID == "" {
		response.BadRequest(c, 10001, "employee_id is required for non-joker cells")
		return
	}

	result, err := h.scheduleSvc.PrimaryAction(c.Request.Context(), &req)
	if err != nil {
		h.handleCellError(c, err)
		return
	}

	response.OK(c, result)
}

// DirectSet writes an explicit menu selection to a cell row.
// PUT /api/v1/schedule/cell
func (h *ScheduleHandler) DirectSet(c *gin.Context) {
	var req dto.DirectSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}
	if !req.Joker && req.EmployeeID == "" {
		response.BadRequest(c, 10001, "employee_id is required for non-joker cells")
		return
	}

	result, err := h.scheduleSvc.DirectSet(c.Request.Context(), &req)
	if err != nil {
		h.handleCellError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ScheduleHandler) handleCellError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 15001, "project not found")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 15002, "employee not found")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13001, "malformed date")
	case errors.Is(err, service.ErrInvalidLeaveType):
		response.BadRequest(c, 13002, "unknown leave type")
	case errors.Is(err, service.ErrJokerLeave):
		response.BadRequest(c, 13003, "joker cells cannot carry a leave type")
	case errors.Is(err, service.ErrUnknownShiftRef):
		response.BadRequest(c, 13004, "shift type does not belong to the project")
	case errors.Is(err, service.ErrNegativeOvertime):
		response.BadRequest(c, 13005, "overtime hours must not be negative")
	default:
		response.InternalError(c)
	}
}
