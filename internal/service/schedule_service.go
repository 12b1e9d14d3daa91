package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/config"
	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
)

// ── schedule grid business errors ──

var (
	ErrInvalidLeaveType = errors.New("unknown leave type")
	ErrJokerLeave       = errors.New("joker cells cannot carry a leave type")
	ErrUnknownShiftRef  = errors.New("shift type does not belong to the project")
	ErrInvalidDate      = errors.New("malformed date")
	ErrNegativeOvertime = errors.New("overtime hours must not be negative")
)

// ScheduleService owns the monthly grid and the cell state machine.
//
// Every mutation targets exactly one cell row and is last-write-wins; the
// repository serializes concurrent writers of the same cell. The caller
// reloads the month when it needs consistent totals, since totals are
// recomputed from the whole grid rather than maintained incrementally.
type ScheduleService interface {
	// LoadSchedule assembles the full month view for a project.
	LoadSchedule(ctx context.Context, projectID string, year, month int) (*dto.ScheduleGridResponse, error)
	// GetCell returns one employee-day cell; missing cells come back as the
	// zero-value shape.
	GetCell(ctx context.Context, q *dto.CellQuery) (*dto.CellResponse, error)
	// GetJoker returns the floating substitute cell of one day.
	GetJoker(ctx context.Context, q *dto.CellQuery) (*dto.CellResponse, error)
	// PrimaryAction applies a context-free click to a cell row.
	PrimaryAction(ctx context.Context, req *dto.PrimaryActionRequest) (*dto.CellResponse, error)
	// DirectSet applies an explicit menu selection to a cell row.
	DirectSet(ctx context.Context, req *dto.DirectSetRequest) (*dto.CellResponse, error)
}

type scheduleService struct {
	repo      *repository.Repository
	logger    *zap.Logger
	tolerance float64
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	tolerance := cfg.Schedule.OvertimeTolerance
	if tolerance <= 0 {
		tolerance = 0.1
	}
	return &scheduleService{repo: repo, logger: logger, tolerance: tolerance}
}

func (s *scheduleService) LoadSchedule(ctx context.Context, projectID string, year, month int) (*dto.ScheduleGridResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	first, last := monthRange(year, month)

	employees, err := s.repo.Employee.ListActiveOnProject(ctx, projectID, first, last)
	if err != nil {
		s.logger.Error("list active employees failed", zap.Error(err))
		return nil, err
	}
	catalog, err := s.repo.ShiftType.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cells, err := s.repo.Schedule.ListCells(ctx, projectID, first, last)
	if err != nil {
		return nil, err
	}
	jokers, err := s.repo.Schedule.ListJokers(ctx, projectID, first, last)
	if err != nil {
		return nil, err
	}

	resp := &dto.ScheduleGridResponse{
		ProjectID:  projectID,
		Year:       year,
		Month:      month,
		Days:       buildMonthDays(year, month),
		Employees:  make([]dto.EmployeeBrief, 0, len(employees)),
		Cells:      make(map[string]map[string]dto.CellResponse),
		Jokers:     make(map[string]dto.CellResponse, len(jokers)),
		Totals:     make([]dto.EmployeeTotals, 0, len(employees)),
		ShiftTypes: make([]dto.ShiftTypeResponse, 0, len(catalog)),
	}
	for i := range employees {
		resp.Employees = append(resp.Employees, dto.EmployeeBrief{
			ID:       employees[i].EmployeeID,
			FullName: employees[i].FullName,
			Title:    employees[i].Title,
		})
	}
	for i := range catalog {
		resp.ShiftTypes = append(resp.ShiftTypes, toShiftTypeResponse(&catalog[i]))
	}
	for i := range cells {
		c := &cells[i]
		byDate, ok := resp.Cells[c.EmployeeID]
		if !ok {
			byDate = make(map[string]dto.CellResponse)
			resp.Cells[c.EmployeeID] = byDate
		}
		byDate[c.Date.Format(dayFormat)] = toCellResponse(c, catalog)
	}
	for i := range jokers {
		j := &jokers[i]
		resp.Jokers[j.Date.Format(dayFormat)] = toJokerResponse(j, catalog)
	}

	resp.Totals = computePlannedTotals(employees, cells, catalog)

	return resp, nil
}

func (s *scheduleService) GetCell(ctx context.Context, q *dto.CellQuery) (*dto.CellResponse, error) {
	date, err := parseDay(q.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	catalog, err := s.repo.ShiftType.ListByProject(ctx, q.ProjectID)
	if err != nil {
		return nil, err
	}

	cell, err := s.repo.Schedule.GetCell(ctx, q.ProjectID, q.EmployeeID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cell = &model.AssignmentCell{ProjectID: q.ProjectID, EmployeeID: q.EmployeeID, Date: date}
	} else if err != nil {
		return nil, err
	}

	resp := toCellResponse(cell, catalog)
	return &resp, nil
}

func (s *scheduleService) GetJoker(ctx context.Context, q *dto.CellQuery) (*dto.CellResponse, error) {
	date, err := parseDay(q.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	catalog, err := s.repo.ShiftType.ListByProject(ctx, q.ProjectID)
	if err != nil {
		return nil, err
	}

	cell, err := s.repo.Schedule.GetJoker(ctx, q.ProjectID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cell = &model.JokerCell{ProjectID: q.ProjectID, Date: date}
	} else if err != nil {
		return nil, err
	}

	resp := toJokerResponse(cell, catalog)
	return &resp, nil
}

func (s *scheduleService) PrimaryAction(ctx context.Context, req *dto.PrimaryActionRequest) (*dto.CellResponse, error) {
	date, catalog, err := s.prepareMutation(ctx, req.ProjectID, req.EmployeeID, req.Joker, req.Date)
	if err != nil {
		return nil, err
	}

	leaveMode := req.Mode == dto.ModeLeave
	if leaveMode {
		if req.Joker {
			return nil, ErrJokerLeave
		}
		if !model.ValidLeaveType(req.LeaveType) {
			return nil, ErrInvalidLeaveType
		}
	}

	if req.Joker {
		cell, err := s.repo.Schedule.MutateJoker(ctx, req.ProjectID, date, func(c *model.JokerCell) error {
			switch req.Row {
			case dto.RowSupervision:
				if len(catalog) == 0 {
					c.Marked = !c.Marked
					return nil
				}
				c.ShiftTypeID = nextShiftRef(catalog, c.ShiftTypeID)
			case dto.RowOvertime:
				c.OvertimeHours = nextOvertimeHours(catalog, c.OvertimeHours, s.tolerance)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		resp := toJokerResponse(cell, catalog)
		return &resp, nil
	}

	cell, err := s.repo.Schedule.MutateCell(ctx, req.ProjectID, req.EmployeeID, date, func(c *model.AssignmentCell) error {
		switch req.Row {
		case dto.RowSupervision:
			if leaveMode {
				leave := req.LeaveType
				c.LeaveType = &leave
				c.ShiftTypeID = nil
				return nil
			}
			if len(catalog) == 0 {
				c.Marked = !c.Marked
				return nil
			}
			c.ShiftTypeID = nextShiftRef(catalog, c.ShiftTypeID)
			if c.ShiftTypeID != nil {
				c.LeaveType = nil
			}
		case dto.RowOvertime:
			c.OvertimeHours = nextOvertimeHours(catalog, c.OvertimeHours, s.tolerance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toCellResponse(cell, catalog)
	return &resp, nil
}

func (s *scheduleService) DirectSet(ctx context.Context, req *dto.DirectSetRequest) (*dto.CellResponse, error) {
	date, catalog, err := s.prepareMutation(ctx, req.ProjectID, req.EmployeeID, req.Joker, req.Date)
	if err != nil {
		return nil, err
	}

	if req.ShiftTypeID != nil && !catalogContains(catalog, *req.ShiftTypeID) {
		return nil, ErrUnknownShiftRef
	}
	if req.LeaveType != nil {
		if req.Joker {
			return nil, ErrJokerLeave
		}
		if !model.ValidLeaveType(*req.LeaveType) {
			return nil, ErrInvalidLeaveType
		}
	}
	if req.OvertimeHours != nil && *req.OvertimeHours < 0 {
		return nil, ErrNegativeOvertime
	}

	if req.Joker {
		cell, err := s.repo.Schedule.MutateJoker(ctx, req.ProjectID, date, func(c *model.JokerCell) error {
			applyJokerDirect(c, catalog, req)
			return nil
		})
		if err != nil {
			return nil, err
		}
		resp := toJokerResponse(cell, catalog)
		return &resp, nil
	}

	cell, err := s.repo.Schedule.MutateCell(ctx, req.ProjectID, req.EmployeeID, date, func(c *model.AssignmentCell) error {
		applyCellDirect(c, catalog, req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toCellResponse(cell, catalog)
	return &resp, nil
}

// prepareMutation validates the mutation target and loads the catalog.
func (s *scheduleService) prepareMutation(ctx context.Context, projectID, employeeID string, joker bool, dateStr string) (time.Time, []model.ShiftType, error) {
	date, err := parseDay(dateStr)
	if err != nil {
		return time.Time{}, nil, ErrInvalidDate
	}

	if _, err := s.repo.Project.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil, ErrProjectNotFound
		}
		return time.Time{}, nil, err
	}
	if !joker {
		if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return time.Time{}, nil, ErrEmployeeNotFound
			}
			return time.Time{}, nil, err
		}
	}

	catalog, err := s.repo.ShiftType.ListByProject(ctx, projectID)
	if err != nil {
		return time.Time{}, nil, err
	}
	return date, catalog, nil
}

// applyCellDirect writes an explicit selection into an employee cell.
// Shift and leave stay mutually exclusive within the same write.
func applyCellDirect(c *model.AssignmentCell, catalog []model.ShiftType, req *dto.DirectSetRequest) {
	switch req.Row {
	case dto.RowSupervision:
		switch {
		case req.LeaveType != nil:
			c.LeaveType = req.LeaveType
			c.ShiftTypeID = nil
		case req.ShiftTypeID != nil:
			c.ShiftTypeID = req.ShiftTypeID
			c.LeaveType = nil
		default:
			c.ShiftTypeID = nil
			c.LeaveType = nil
			c.Marked = false
		}
	case dto.RowOvertime:
		switch {
		case req.OvertimeHours != nil:
			c.OvertimeHours = *req.OvertimeHours
		case req.ShiftTypeID != nil:
			c.OvertimeHours = shiftDuration(catalog, req.ShiftTypeID)
		default:
			c.OvertimeHours = 0
		}
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
}

// applyJokerDirect mirrors applyCellDirect without the leave concept.
func applyJokerDirect(c *model.JokerCell, catalog []model.ShiftType, req *dto.DirectSetRequest) {
	switch req.Row {
	case dto.RowSupervision:
		if req.ShiftTypeID != nil {
			c.ShiftTypeID = req.ShiftTypeID
		} else {
			c.ShiftTypeID = nil
			c.Marked = false
		}
	case dto.RowOvertime:
		switch {
		case req.OvertimeHours != nil:
			c.OvertimeHours = *req.OvertimeHours
		case req.ShiftTypeID != nil:
			c.OvertimeHours = shiftDuration(catalog, req.ShiftTypeID)
		default:
			c.OvertimeHours = 0
		}
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
}

// computePlannedTotals sums planned supervision and overtime hours per
// employee over the visible month. Attendance plays no part here.
func computePlannedTotals(employees []model.Employee, cells []model.AssignmentCell, catalog []model.ShiftType) []dto.EmployeeTotals {
	byEmployee := make(map[string]*dto.EmployeeTotals, len(employees))
	totals := make([]dto.EmployeeTotals, len(employees))
	for i := range employees {
		totals[i] = dto.EmployeeTotals{EmployeeID: employees[i].EmployeeID}
		byEmployee[employees[i].EmployeeID] = &totals[i]
	}
	for i := range cells {
		t, ok := byEmployee[cells[i].EmployeeID]
		if !ok {
			continue
		}
		t.SupervisionHours += shiftDuration(catalog, cells[i].ShiftTypeID)
		t.OvertimeHours += cells[i].OvertimeHours
	}
	return totals
}

func catalogContains(catalog []model.ShiftType, id string) bool {
	for i := range catalog {
		if catalog[i].ShiftTypeID == id {
			return true
		}
	}
	return false
}

func toCellResponse(c *model.AssignmentCell, catalog []model.ShiftType) dto.CellResponse {
	resp := dto.CellResponse{
		ProjectID:     c.ProjectID,
		EmployeeID:    c.EmployeeID,
		Date:          c.Date.Format(dayFormat),
		ShiftTypeID:   c.ShiftTypeID,
		LeaveType:     c.LeaveType,
		OvertimeHours: c.OvertimeHours,
		Marked:        c.Marked,
		Notes:         c.Notes,
	}
	fillCatalogAttrs(&resp, catalog)
	return resp
}

func toJokerResponse(c *model.JokerCell, catalog []model.ShiftType) dto.CellResponse {
	resp := dto.CellResponse{
		ProjectID:     c.ProjectID,
		Joker:         true,
		Date:          c.Date.Format(dayFormat),
		ShiftTypeID:   c.ShiftTypeID,
		OvertimeHours: c.OvertimeHours,
		Marked:        c.Marked,
		Notes:         c.Notes,
	}
	fillCatalogAttrs(&resp, catalog)
	return resp
}

func fillCatalogAttrs(resp *dto.CellResponse, catalog []model.ShiftType) {
	if resp.ShiftTypeID == nil {
		return
	}
	for i := range catalog {
		if catalog[i].ShiftTypeID == *resp.ShiftTypeID {
			resp.ShortCode = catalog[i].ShortCode
			resp.Color = catalog[i].Color
			return
		}
	}
}
