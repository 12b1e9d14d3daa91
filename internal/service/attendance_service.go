package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
)

// Display statuses derived by reconciliation, beyond the recorded
// attendance statuses which map through one-to-one.
const (
	DisplayPending = "pending"  // today, record not in yet
	DisplayPlanned = "planned"  // future day with a shift
	DisplayNoShift = "no_shift" // nothing assigned at all
)

// Planned-vs-actual day classes for summary views.
const (
	ClassFuture   = "future"
	ClassComplete = "complete"
	ClassPartial  = "partial"
	ClassNone     = "none"
	ClassEmpty    = "empty"
)

// AttendanceService reconciles the planned grid against the check-in
// records supplied by the external QR subsystem. Leave tags take precedence
// over attendance; future days stay planned even when a record erroneously
// exists.
type AttendanceService interface {
	MonthOverview(ctx context.Context, req *dto.AttendanceOverviewRequest) (*dto.AttendanceOverviewResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, now: time.Now}
}

func (s *attendanceService) MonthOverview(ctx context.Context, req *dto.AttendanceOverviewRequest) (*dto.AttendanceOverviewResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	first, last := monthRange(req.Year, req.Month)

	employees, err := s.repo.Employee.ListActiveOnProject(ctx, req.ProjectID, first, last)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.ShiftType.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	cells, err := s.repo.Schedule.ListCells(ctx, req.ProjectID, first, last)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Attendance.ListRange(ctx, req.ProjectID, first, last)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	cellIndex := make(map[string]*model.AssignmentCell, len(cells))
	for i := range cells {
		cellIndex[cells[i].EmployeeID+"|"+cells[i].Date.Format(dayFormat)] = &cells[i]
	}
	recordIndex := make(map[string]*model.AttendanceRecord, len(records))
	for i := range records {
		recordIndex[records[i].EmployeeID+"|"+records[i].Date.Format(dayFormat)] = &records[i]
	}
	catalogIndex := make(map[string]*model.ShiftType, len(catalog))
	for i := range catalog {
		catalogIndex[catalog[i].ShiftTypeID] = &catalog[i]
	}

	now := s.now()
	today := dateOnly(now)
	days := buildMonthDays(req.Year, req.Month)

	resp := &dto.AttendanceOverviewResponse{
		ProjectID: req.ProjectID,
		Year:      req.Year,
		Month:     req.Month,
		Employees: make([]dto.EmployeeAttendance, 0, len(employees)),
	}

	for i := range employees {
		emp := &employees[i]
		ea := dto.EmployeeAttendance{
			EmployeeID: emp.EmployeeID,
			FullName:   emp.FullName,
			Days:       make([]dto.DayStatus, 0, len(days)),
		}

		for _, day := range days {
			key := emp.EmployeeID + "|" + day.Date
			cell := cellIndex[key]
			record := recordIndex[key]
			date, _ := parseDay(day.Date)

			var shift *model.ShiftType
			if cell != nil && cell.ShiftTypeID != nil {
				shift = catalogIndex[*cell.ShiftTypeID]
			}

			display := displayStatus(cell, shift, record, date, today)
			class := plannedClass(cell, shift, record, date, today, now)

			ea.Days = append(ea.Days, dto.DayStatus{
				Date:         day.Date,
				Display:      display,
				PlannedClass: class,
				Weekend:      day.Weekend,
			})

			hasShift := shift != nil
			if hasShift && (display == model.AttendancePresent || display == model.AttendanceLate) {
				ea.PresentCount++
			}
			if hasShift && date.Before(today) && display == model.AttendanceAbsent {
				ea.AbsentCount++
			}
			if record != nil {
				ea.TotalOvertime += record.OvertimeHours
			}
		}

		resp.Employees = append(resp.Employees, ea)
	}

	return resp, nil
}

// displayStatus combines the planned cell, its leave tag and the attendance
// record into one label for the given day.
//
// Precedence: leave tag > future guard > recorded status > derived
// absent/pending/planned. Leave wins over any attendance data, and a future
// day with a shift is always "planned", even when a record erroneously
// exists for it.
func displayStatus(cell *model.AssignmentCell, shift *model.ShiftType, record *model.AttendanceRecord, day, today time.Time) string {
	if cell != nil && cell.LeaveType != nil {
		return *cell.LeaveType
	}
	if shift == nil {
		return DisplayNoShift
	}
	if day.After(today) {
		return DisplayPlanned
	}
	if record != nil {
		return record.Status
	}
	if day.Before(today) {
		return model.AttendanceAbsent
	}
	return DisplayPending
}

// plannedClass classifies plan-vs-actual for summary views. The planned
// amount is the assigned shift's duration plus the cell's overtime hours;
// the actual amount is the record's worked hours plus its recorded overtime.
func plannedClass(cell *model.AssignmentCell, shift *model.ShiftType, record *model.AttendanceRecord, day, today time.Time, now time.Time) string {
	var planned float64
	if shift != nil {
		planned += shift.DurationHours
	}
	if cell != nil && cell.LeaveType == nil {
		planned += cell.OvertimeHours
	}
	if planned == 0 || (cell != nil && cell.LeaveType != nil) {
		return ClassEmpty
	}

	if day.After(today) {
		return ClassFuture
	}
	if day.Equal(today) && shift != nil {
		if start, err := parseClock(shift.StartTime); err == nil {
			startAt := time.Date(now.Year(), now.Month(), now.Day(), start/60, start%60, 0, 0, now.Location())
			if startAt.After(now) {
				return ClassFuture
			}
		}
	}

	var actual float64
	if record != nil {
		actual = record.WorkedHours() + record.OvertimeHours
	}
	switch {
	case actual >= planned:
		return ClassComplete
	case actual > 0:
		return ClassPartial
	default:
		return ClassNone
	}
}
