package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/service"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/response"
)

// DirectoryHandler serves the project and employee directory endpoints.
type DirectoryHandler struct {
	directorySvc service.DirectoryService
}

// NewDirectoryHandler creates a DirectoryHandler.
func NewDirectoryHandler(directorySvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

// ListProjects returns projects, optionally filtered by company.
// GET /api/v1/projects?company_id=xxx
func (h *DirectoryHandler) ListProjects(c *gin.Context) {
	result, err := h.directorySvc.ListProjects(c.Request.Context(), c.Query("company_id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListActiveEmployees returns the employees active on a project for a month.
// GET /api/v1/projects/employees?project_id=xxx&year=2026&month=3
func (h *DirectoryHandler) ListActiveEmployees(c *gin.Context) {
	var req dto.ActiveEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.directorySvc.ListActiveEmployees(c.Request.Context(), &req)
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

// AssignEmployees assigns several employees to a project at once.
// Partial failures come back per item with a 200.
// POST /api/v1/projects/employees
func (h *DirectoryHandler) AssignEmployees(c *gin.Context) {
	var req dto.BatchAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.directorySvc.AssignEmployees(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.NotFound(c, 15001, "project not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 13001, "malformed date")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ReleaseEmployee ends an employee's open project assignment.
// DELETE /api/v1/projects/employees
func (h *DirectoryHandler) ReleaseEmployee(c *gin.Context) {
	var req dto.ReleaseEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	if err := h.directorySvc.ReleaseEmployee(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 15003, "no open assignment for this employee")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 13001, "malformed date")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
