package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/config"
	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
)

// ── shift catalog business errors ──

var (
	ErrShiftTypeNotFound = errors.New("shift type not found")
	ErrShiftTypeInUse    = errors.New("shift type is referenced by schedule cells")
	ErrInvalidTimeRange  = errors.New("start and end time must describe a non-zero range")
	ErrReorderMismatch   = errors.New("reorder list does not match the project catalog")
)

// ShiftTypeService manages the per-project shift catalog.
// Short codes are sequential strings "1".."N" in catalog order and are
// recomputed on every reorder and delete, so the catalog never carries a
// gap or a duplicate code. Deleting a shift type that live cells still
// reference is rejected with ErrShiftTypeInUse.
type ShiftTypeService interface {
	List(ctx context.Context, projectID string) ([]dto.ShiftTypeResponse, error)
	Create(ctx context.Context, req *dto.CreateShiftTypeRequest) (*dto.ShiftTypeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftTypeRequest) (*dto.ShiftTypeResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req *dto.ReorderShiftTypesRequest) ([]dto.ShiftTypeResponse, error)
}

type shiftTypeService struct {
	repo      *repository.Repository
	logger    *zap.Logger
	precision int
}

// NewShiftTypeService creates a ShiftTypeService.
func NewShiftTypeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ShiftTypeService {
	precision := cfg.Schedule.DurationPrecision
	if precision <= 0 {
		precision = 2
	}
	return &shiftTypeService{repo: repo, logger: logger, precision: precision}
}

func (s *shiftTypeService) List(ctx context.Context, projectID string) ([]dto.ShiftTypeResponse, error) {
	shiftTypes, err := s.repo.ShiftType.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("list shift types failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ShiftTypeResponse, 0, len(shiftTypes))
	for i := range shiftTypes {
		out = append(out, toShiftTypeResponse(&shiftTypes[i]))
	}
	return out, nil
}

func (s *shiftTypeService) Create(ctx context.Context, req *dto.CreateShiftTypeRequest) (*dto.ShiftTypeResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	duration, err := s.deriveDuration(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ShiftType.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	next := len(existing) + 1

	color := req.Color
	if color == "" {
		color = "#1976d2"
	}

	shiftType := &model.ShiftType{
		ProjectID:     req.ProjectID,
		Name:          req.Name,
		ShortCode:     strconv.Itoa(next),
		Color:         color,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: duration,
		BreakMinutes:  req.BreakMinutes,
		OrderIndex:    next,
	}
	if err := s.repo.ShiftType.Create(ctx, shiftType); err != nil {
		s.logger.Error("create shift type failed", zap.Error(err))
		return nil, err
	}

	resp := toShiftTypeResponse(shiftType)
	return &resp, nil
}

func (s *shiftTypeService) Update(ctx context.Context, id string, req *dto.UpdateShiftTypeRequest) (*dto.ShiftTypeResponse, error) {
	shiftType, err := s.repo.ShiftType.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftTypeNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		shiftType.Name = *req.Name
	}
	if req.Color != nil {
		shiftType.Color = *req.Color
	}
	if req.StartTime != nil {
		shiftType.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shiftType.EndTime = *req.EndTime
	}
	if req.BreakMinutes != nil {
		shiftType.BreakMinutes = *req.BreakMinutes
	}
	if req.StartTime != nil || req.EndTime != nil {
		duration, err := s.deriveDuration(shiftType.StartTime, shiftType.EndTime)
		if err != nil {
			return nil, err
		}
		shiftType.DurationHours = duration
	}

	if err := s.repo.ShiftType.Update(ctx, shiftType); err != nil {
		s.logger.Error("update shift type failed", zap.Error(err))
		return nil, err
	}

	resp := toShiftTypeResponse(shiftType)
	return &resp, nil
}

func (s *shiftTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.ShiftType.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftTypeNotFound
		}
		return err
	}

	refs, err := s.repo.ShiftType.ReferenceCount(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: %d cells", ErrShiftTypeInUse, refs)
	}

	return s.repo.ShiftType.Delete(ctx, id)
}

func (s *shiftTypeService) Reorder(ctx context.Context, req *dto.ReorderShiftTypesRequest) ([]dto.ShiftTypeResponse, error) {
	current, err := s.repo.ShiftType.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(current) != len(req.OrderedIDs) {
		return nil, ErrReorderMismatch
	}
	known := make(map[string]bool, len(current))
	for i := range current {
		known[current[i].ShiftTypeID] = true
	}
	seen := make(map[string]bool, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if !known[id] || seen[id] {
			return nil, ErrReorderMismatch
		}
		seen[id] = true
	}

	if err := s.repo.ShiftType.Reorder(ctx, req.ProjectID, req.OrderedIDs); err != nil {
		s.logger.Error("reorder shift types failed", zap.Error(err))
		return nil, err
	}

	return s.List(ctx, req.ProjectID)
}

// deriveDuration computes (end - start) mod 24h in hours, rounded to the
// configured precision. Overnight shifts (end before start) wrap across
// midnight; an equal start and end is rejected rather than read as 24h.
func (s *shiftTypeService) deriveDuration(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	minutes := (end - start + 24*60) % (24 * 60)
	if minutes == 0 {
		return 0, ErrInvalidTimeRange
	}

	factor := math.Pow10(s.precision)
	return math.Round(float64(minutes)/60*factor) / factor, nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(v string) (int, error) {
	if len(v) != 5 || v[2] != ':' {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	hh, err := strconv.Atoi(v[:2])
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	mm, err := strconv.Atoi(v[3:])
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("malformed clock value %q", v)
	}
	return hh*60 + mm, nil
}

func toShiftTypeResponse(st *model.ShiftType) dto.ShiftTypeResponse {
	return dto.ShiftTypeResponse{
		ID:            st.ShiftTypeID,
		ProjectID:     st.ProjectID,
		Name:          st.Name,
		ShortCode:     st.ShortCode,
		Color:         st.Color,
		StartTime:     st.StartTime,
		EndTime:       st.EndTime,
		DurationHours: st.DurationHours,
		BreakMinutes:  st.BreakMinutes,
		OrderIndex:    st.OrderIndex,
	}
}
