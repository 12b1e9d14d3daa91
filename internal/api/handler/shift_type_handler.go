package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/service"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/response"
)

// ShiftTypeHandler serves the shift catalog endpoints.
type ShiftTypeHandler struct {
	shiftTypeSvc service.ShiftTypeService
}

// NewShiftTypeHandler creates a ShiftTypeHandler.
func NewShiftTypeHandler(shiftTypeSvc service.ShiftTypeService) *ShiftTypeHandler {
	return &ShiftTypeHandler{shiftTypeSvc: shiftTypeSvc}
}

// List returns a project's shift catalog in display order.
// GET /api/v1/shift-types?project_id=xxx
func (h *ShiftTypeHandler) List(c *gin.Context) {
	var req dto.ShiftTypeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.shiftTypeSvc.List(c.Request.Context(), req.ProjectID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create appends a shift type to the project catalog.
// POST /api/v1/shift-types
func (h *ShiftTypeHandler) Create(c *gin.Context) {
	var req dto.CreateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.shiftTypeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.NotFound(c, 15001, "project not found")
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.BadRequest(c, 12001, "start and end time must describe a non-zero range")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Update edits a shift type.
// PUT /api/v1/shift-types/:id
func (h *ShiftTypeHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.shiftTypeSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12002, "shift type not found")
		case errors.Is(err, service.ErrInvalidTimeRange):
			response.BadRequest(c, 12001, "start and end time must describe a non-zero range")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete removes an unreferenced shift type.
// DELETE /api/v1/shift-types/:id
func (h *ShiftTypeHandler) Delete(c *gin.Context) {
	err := h.shiftTypeSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftTypeNotFound):
			response.NotFound(c, 12002, "shift type not found")
		case errors.Is(err, service.ErrShiftTypeInUse):
			response.Conflict(c, 12003, "shift type is still referenced by schedule cells")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Reorder re-sequences the catalog and its short codes.
// PUT /api/v1/shift-types/reorder
func (h *ShiftTypeHandler) Reorder(c *gin.Context) {
	var req dto.ReorderShiftTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.shiftTypeSvc.Reorder(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrReorderMismatch) {
			response.BadRequest(c, 12004, "ordered ids must be a permutation of the catalog")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
