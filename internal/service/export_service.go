package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
)

// ── export business errors ──

var (
	ErrExportNoEmployees = errors.New("no employees active on the project for that month")
	ErrExportNoCells     = errors.New("no assignments for that employee in the month")
)

// ExportService renders the monthly grid as files.
//
// Excel: one sheet per month, day columns, one row per employee showing
// the supervision short code with the overtime hours in parentheses, a
// joker row, and planned totals columns. ICS: one VEVENT per assigned day
// of a single employee, usable as a personal calendar feed.
type ExportService interface {
	ExportScheduleXLSX(ctx context.Context, projectID string, year, month int) (*bytes.Buffer, string, error)
	ExportEmployeeICS(ctx context.Context, projectID, employeeID string, year, month int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportScheduleXLSX(ctx context.Context, projectID string, year, month int) (*bytes.Buffer, string, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", err
	}

	first, last := monthRange(year, month)
	employees, err := s.repo.Employee.ListActiveOnProject(ctx, projectID, first, last)
	if err != nil {
		return nil, "", err
	}
	if len(employees) == 0 {
		return nil, "", ErrExportNoEmployees
	}
	catalog, err := s.repo.ShiftType.ListByProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	cells, err := s.repo.Schedule.ListCells(ctx, projectID, first, last)
	if err != nil {
		return nil, "", err
	}
	jokers, err := s.repo.Schedule.ListJokers(ctx, projectID, first, last)
	if err != nil {
		return nil, "", err
	}

	catalogIndex := make(map[string]*model.ShiftType, len(catalog))
	for i := range catalog {
		catalogIndex[catalog[i].ShiftTypeID] = &catalog[i]
	}
	cellIndex := make(map[string]*model.AssignmentCell, len(cells))
	for i := range cells {
		cellIndex[cells[i].EmployeeID+"|"+cells[i].Date.Format(dayFormat)] = &cells[i]
	}
	jokerIndex := make(map[string]*model.JokerCell, len(jokers))
	for i := range jokers {
		jokerIndex[jokers[i].Date.Format(dayFormat)] = &jokers[i]
	}

	days := buildMonthDays(year, month)
	sheet := fmt.Sprintf("%04d-%02d", year, month)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheet)

	// header: employee, day numbers, totals
	setCell := func(col, row int, value interface{}) {
		name, _ := excelize.CoordinatesToCellName(col, row)
		f.SetCellValue(sheet, name, value)
	}
	setCell(1, 1, "Employee")
	for i, day := range days {
		setCell(i+2, 1, day.Day)
	}
	setCell(len(days)+2, 1, "Supervision (h)")
	setCell(len(days)+3, 1, "Overtime (h)")

	totals := computePlannedTotals(employees, cells, catalog)
	totalIndex := make(map[string]int, len(totals))
	for i := range totals {
		totalIndex[totals[i].EmployeeID] = i
	}

	row := 2
	for i := range employees {
		emp := &employees[i]
		setCell(1, row, emp.FullName)
		for j, day := range days {
			cell := cellIndex[emp.EmployeeID+"|"+day.Date]
			if cell == nil {
				continue
			}
			setCell(j+2, row, renderCellText(cell.ShiftTypeID, cell.LeaveType, cell.OvertimeHours, cell.Marked, catalogIndex))
		}
		if ti, ok := totalIndex[emp.EmployeeID]; ok {
			setCell(len(days)+2, row, totals[ti].SupervisionHours)
			setCell(len(days)+3, row, totals[ti].OvertimeHours)
		}
		row++
	}

	setCell(1, row, "Joker")
	for j, day := range days {
		joker := jokerIndex[day.Date]
		if joker == nil {
			continue
		}
		setCell(j+2, row, renderCellText(joker.ShiftTypeID, nil, joker.OvertimeHours, joker.Marked, catalogIndex))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("schedule_%s_%s.xlsx", project.Name, sheet)
	return buf, filename, nil
}

func (s *exportService) ExportEmployeeICS(ctx context.Context, projectID, employeeID string, year, month int) (*bytes.Buffer, string, error) {
	if _, err := s.repo.Project.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", err
	}
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEmployeeNotFound
		}
		return nil, "", err
	}

	first, last := monthRange(year, month)
	catalog, err := s.repo.ShiftType.ListByProject(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	catalogIndex := make(map[string]*model.ShiftType, len(catalog))
	for i := range catalog {
		catalogIndex[catalog[i].ShiftTypeID] = &catalog[i]
	}

	cells, err := s.repo.Schedule.ListCells(ctx, projectID, first, last)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//MarmaraPMS//Schedule//EN")

	count := 0
	for i := range cells {
		cell := &cells[i]
		if cell.EmployeeID != employeeID || cell.ShiftTypeID == nil {
			continue
		}
		shift, ok := catalogIndex[*cell.ShiftTypeID]
		if !ok {
			continue
		}

		startMin, err := parseClock(shift.StartTime)
		if err != nil {
			continue
		}
		endMin, err := parseClock(shift.EndTime)
		if err != nil {
			continue
		}

		start := cell.Date.Add(time.Duration(startMin) * time.Minute)
		end := cell.Date.Add(time.Duration(endMin) * time.Minute)
		if !end.After(start) {
			// overnight shift ends on the next day
			end = end.AddDate(0, 0, 1)
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@marmara-pms", cell.CellID, cell.Date.Format(dayFormat)))
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(shift.Name)
		event.SetDescription(fmt.Sprintf("Shift %s (%s-%s)", shift.ShortCode, shift.StartTime, shift.EndTime))
		count++
	}

	if count == 0 {
		return nil, "", ErrExportNoCells
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("shifts_%s_%04d-%02d.ics", employee.FullName, year, month)
	return buf, filename, nil
}

// renderCellText builds the compact export label of a cell: the shift's
// short code or leave tag, with nonzero overtime appended as "(+Nh)".
func renderCellText(shiftRef *string, leave *string, overtime float64, marked bool, catalogIndex map[string]*model.ShiftType) string {
	text := ""
	switch {
	case leave != nil:
		text = *leave
	case shiftRef != nil:
		if shift, ok := catalogIndex[*shiftRef]; ok {
			text = shift.ShortCode
		}
	case marked:
		text = "x"
	}
	if overtime > 0 {
		if text != "" {
			text += " "
		}
		text += fmt.Sprintf("(+%gh)", overtime)
	}
	return text
}
