package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pysgod/MarmaraPMS-sub000/config"
	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

func newScheduleFixture(t *testing.T) (ScheduleService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepos()
	cfg := &config.Config{}
	cfg.Schedule.OvertimeTolerance = 0.1
	svc := NewScheduleService(cfg, repo, zap.NewNop())
	return svc, mocks
}

func supervisionClick(projectID, employeeID, date string) *dto.PrimaryActionRequest {
	return &dto.PrimaryActionRequest{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Date:       date,
		Row:        dto.RowSupervision,
		Mode:       dto.ModeShift,
	}
}

func TestPrimaryActionSupervisionCycle(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)
	night := mocks.seedShift("proj-1", "st-night", "Night", "16:00", "00:00", 8)

	ctx := context.Background()
	req := supervisionClick("proj-1", "emp-1", "2026-03-10")

	// none -> day -> night -> none, each shift visited exactly once
	cell, err := svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("first click: %v", err)
	}
	if cell.ShiftTypeID == nil || *cell.ShiftTypeID != day.ShiftTypeID {
		t.Fatalf("after first click want %s, got %v", day.ShiftTypeID, cell.ShiftTypeID)
	}

	cell, err = svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("second click: %v", err)
	}
	if cell.ShiftTypeID == nil || *cell.ShiftTypeID != night.ShiftTypeID {
		t.Fatalf("after second click want %s, got %v", night.ShiftTypeID, cell.ShiftTypeID)
	}

	cell, err = svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("third click: %v", err)
	}
	if cell.ShiftTypeID != nil {
		t.Fatalf("after full cycle want empty cell, got %v", *cell.ShiftTypeID)
	}
}

func TestPrimaryActionStaleReferenceRestartsCycle(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	// cell still references a shift type that left the catalog
	stale := "st-removed"
	mocks.schedule.cells[cellKey("proj-1", "emp-1", mustDay(t, "2026-03-10"))] = &model.AssignmentCell{
		CellID:      "cell-stale",
		ProjectID:   "proj-1",
		EmployeeID:  "emp-1",
		Date:        mustDay(t, "2026-03-10"),
		ShiftTypeID: &stale,
	}

	cell, err := svc.PrimaryAction(context.Background(), supervisionClick("proj-1", "emp-1", "2026-03-10"))
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if cell.ShiftTypeID == nil || *cell.ShiftTypeID != day.ShiftTypeID {
		t.Fatalf("stale ref should restart at first shift, got %v", cell.ShiftTypeID)
	}
}

func TestPrimaryActionEmptyCatalogTogglesMark(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")

	ctx := context.Background()
	req := supervisionClick("proj-1", "emp-1", "2026-03-10")

	cell, err := svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if !cell.Marked {
		t.Fatal("first click with empty catalog should set the mark")
	}
	cell, err = svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if cell.Marked {
		t.Fatal("second click should clear the mark")
	}
}

func TestPrimaryActionOvertimeCycle(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)
	mocks.seedShift("proj-1", "st-half", "Half", "08:00", "12:00", 4)

	ctx := context.Background()
	req := &dto.PrimaryActionRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
		Row:        dto.RowOvertime,
	}

	want := []float64{8, 4, 0}
	for i, w := range want {
		cell, err := svc.PrimaryAction(ctx, req)
		if err != nil {
			t.Fatalf("click %d: %v", i+1, err)
		}
		if cell.OvertimeHours != w {
			t.Fatalf("click %d: want %.1f overtime, got %.1f", i+1, w, cell.OvertimeHours)
		}
	}
}

func TestPrimaryActionOvertimeToleranceMatch(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)
	mocks.seedShift("proj-1", "st-half", "Half", "08:00", "12:00", 4)

	// 8.05 is within 0.1 of the 8h duration, so the next stop is 4h
	mocks.schedule.cells[cellKey("proj-1", "emp-1", mustDay(t, "2026-03-10"))] = &model.AssignmentCell{
		CellID:        "cell-1",
		ProjectID:     "proj-1",
		EmployeeID:    "emp-1",
		Date:          mustDay(t, "2026-03-10"),
		OvertimeHours: 8.05,
	}

	cell, err := svc.PrimaryAction(context.Background(), &dto.PrimaryActionRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
		Row:        dto.RowOvertime,
	})
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if cell.OvertimeHours != 4 {
		t.Fatalf("want 4 overtime after near-match, got %.2f", cell.OvertimeHours)
	}
}

func TestPrimaryActionLeaveMode(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	ctx := context.Background()

	// assign a shift, then tag a leave: the shift must be cleared
	if _, err := svc.PrimaryAction(ctx, supervisionClick("proj-1", "emp-1", "2026-03-10")); err != nil {
		t.Fatalf("shift click: %v", err)
	}
	cell, err := svc.PrimaryAction(ctx, &dto.PrimaryActionRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
		Row:        dto.RowSupervision,
		Mode:       dto.ModeLeave,
		LeaveType:  model.LeaveWeeklyRest,
	})
	if err != nil {
		t.Fatalf("leave click: %v", err)
	}
	if cell.LeaveType == nil || *cell.LeaveType != model.LeaveWeeklyRest {
		t.Fatalf("want weekly rest leave, got %v", cell.LeaveType)
	}
	if cell.ShiftTypeID != nil {
		t.Fatal("leave tag must clear the shift assignment")
	}

	// assigning a shift again clears the leave
	cell, err = svc.PrimaryAction(ctx, supervisionClick("proj-1", "emp-1", "2026-03-10"))
	if err != nil {
		t.Fatalf("shift click after leave: %v", err)
	}
	if cell.ShiftTypeID == nil {
		t.Fatal("shift click after leave should assign the first shift")
	}
	if cell.LeaveType != nil {
		t.Fatal("shift assignment must clear the leave tag")
	}
}

func TestPrimaryActionRejectsUnknownLeaveType(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")

	_, err := svc.PrimaryAction(context.Background(), &dto.PrimaryActionRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
		Row:        dto.RowSupervision,
		Mode:       dto.ModeLeave,
		LeaveType:  "sabbatical",
	})
	if !errors.Is(err, ErrInvalidLeaveType) {
		t.Fatalf("want ErrInvalidLeaveType, got %v", err)
	}
}

func TestPrimaryActionJokerRejectsLeave(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1")

	_, err := svc.PrimaryAction(context.Background(), &dto.PrimaryActionRequest{
		ProjectID: "proj-1",
		Joker:     true,
		Date:      "2026-03-10",
		Row:       dto.RowSupervision,
		Mode:      dto.ModeLeave,
		LeaveType: model.LeaveWeeklyRest,
	})
	if !errors.Is(err, ErrJokerLeave) {
		t.Fatalf("want ErrJokerLeave, got %v", err)
	}
}

func TestPrimaryActionJokerCycles(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	ctx := context.Background()
	req := &dto.PrimaryActionRequest{
		ProjectID: "proj-1",
		Joker:     true,
		Date:      "2026-03-10",
		Row:       dto.RowSupervision,
		Mode:      dto.ModeShift,
	}

	cell, err := svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if !cell.Joker {
		t.Fatal("response should be flagged as joker")
	}
	if cell.ShiftTypeID == nil || *cell.ShiftTypeID != day.ShiftTypeID {
		t.Fatalf("want %s, got %v", day.ShiftTypeID, cell.ShiftTypeID)
	}

	cell, err = svc.PrimaryAction(ctx, req)
	if err != nil {
		t.Fatalf("PrimaryAction: %v", err)
	}
	if cell.ShiftTypeID != nil {
		t.Fatal("single-shift catalog should cycle back to empty")
	}
}

func TestDirectSetShiftClearsLeave(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	leave := model.LeaveAnnual
	mocks.schedule.cells[cellKey("proj-1", "emp-1", mustDay(t, "2026-03-10"))] = &model.AssignmentCell{
		CellID:     "cell-1",
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       mustDay(t, "2026-03-10"),
		LeaveType:  &leave,
	}

	cell, err := svc.DirectSet(context.Background(), &dto.DirectSetRequest{
		ProjectID:   "proj-1",
		EmployeeID:  "emp-1",
		Date:        "2026-03-10",
		Row:         dto.RowSupervision,
		ShiftTypeID: &day.ShiftTypeID,
	})
	if err != nil {
		t.Fatalf("DirectSet: %v", err)
	}
	if cell.ShiftTypeID == nil || *cell.ShiftTypeID != day.ShiftTypeID {
		t.Fatalf("want %s, got %v", day.ShiftTypeID, cell.ShiftTypeID)
	}
	if cell.LeaveType != nil {
		t.Fatal("setting a shift must clear the leave tag")
	}
}

func TestDirectSetOvertimeFromShiftDuration(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	cell, err := svc.DirectSet(context.Background(), &dto.DirectSetRequest{
		ProjectID:   "proj-1",
		EmployeeID:  "emp-1",
		Date:        "2026-03-10",
		Row:         dto.RowOvertime,
		ShiftTypeID: &day.ShiftTypeID,
	})
	if err != nil {
		t.Fatalf("DirectSet: %v", err)
	}
	if cell.OvertimeHours != 8 {
		t.Fatalf("want shift duration 8 as overtime, got %.2f", cell.OvertimeHours)
	}
}

func TestDirectSetRejectsForeignShiftType(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	mocks.seedProject("proj-2")
	other := mocks.seedShift("proj-2", "st-other", "Other", "08:00", "16:00", 8)

	_, err := svc.DirectSet(context.Background(), &dto.DirectSetRequest{
		ProjectID:   "proj-1",
		EmployeeID:  "emp-1",
		Date:        "2026-03-10",
		Row:         dto.RowSupervision,
		ShiftTypeID: &other.ShiftTypeID,
	})
	if !errors.Is(err, ErrUnknownShiftRef) {
		t.Fatalf("want ErrUnknownShiftRef, got %v", err)
	}
}

func TestDirectSetClearSupervision(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	ctx := context.Background()
	if _, err := svc.DirectSet(ctx, &dto.DirectSetRequest{
		ProjectID:   "proj-1",
		EmployeeID:  "emp-1",
		Date:        "2026-03-10",
		Row:         dto.RowSupervision,
		ShiftTypeID: &day.ShiftTypeID,
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	cell, err := svc.DirectSet(ctx, &dto.DirectSetRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
		Row:        dto.RowSupervision,
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cell.ShiftTypeID != nil || cell.LeaveType != nil || cell.Marked {
		t.Fatalf("cleared cell should be empty, got %+v", cell)
	}
}

func TestLoadScheduleAssemblesGridAndTotals(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1", "emp-2")
	day := mocks.seedShift("proj-1", "st-day", "Day", "08:00", "16:00", 8)

	ctx := context.Background()
	for _, date := range []string{"2026-03-02", "2026-03-03"} {
		if _, err := svc.DirectSet(ctx, &dto.DirectSetRequest{
			ProjectID:   "proj-1",
			EmployeeID:  "emp-1",
			Date:        date,
			Row:         dto.RowSupervision,
			ShiftTypeID: &day.ShiftTypeID,
		}); err != nil {
			t.Fatalf("seed cell %s: %v", date, err)
		}
	}
	overtime := 2.5
	if _, err := svc.DirectSet(ctx, &dto.DirectSetRequest{
		ProjectID:     "proj-1",
		EmployeeID:    "emp-1",
		Date:          "2026-03-02",
		Row:           dto.RowOvertime,
		OvertimeHours: &overtime,
	}); err != nil {
		t.Fatalf("seed overtime: %v", err)
	}
	if _, err := svc.PrimaryAction(ctx, &dto.PrimaryActionRequest{
		ProjectID: "proj-1",
		Joker:     true,
		Date:      "2026-03-02",
		Row:       dto.RowSupervision,
		Mode:      dto.ModeShift,
	}); err != nil {
		t.Fatalf("seed joker: %v", err)
	}

	grid, err := svc.LoadSchedule(ctx, "proj-1", 2026, 3)
	if err != nil {
		t.Fatalf("LoadSchedule: %v", err)
	}
	if len(grid.Days) != 31 {
		t.Fatalf("March should have 31 days, got %d", len(grid.Days))
	}
	if len(grid.Employees) != 2 {
		t.Fatalf("want 2 employees, got %d", len(grid.Employees))
	}
	if len(grid.Cells["emp-1"]) != 2 {
		t.Fatalf("want 2 cells for emp-1, got %d", len(grid.Cells["emp-1"]))
	}
	c := grid.Cells["emp-1"]["2026-03-02"]
	if c.ShortCode != "1" {
		t.Fatalf("catalog attrs not resolved, short code %q", c.ShortCode)
	}
	if _, ok := grid.Jokers["2026-03-02"]; !ok {
		t.Fatal("joker cell missing from grid")
	}

	var total *dto.EmployeeTotals
	for i := range grid.Totals {
		if grid.Totals[i].EmployeeID == "emp-1" {
			total = &grid.Totals[i]
		}
	}
	if total == nil {
		t.Fatal("no totals entry for emp-1")
	}
	if total.SupervisionHours != 16 {
		t.Fatalf("want 16 supervision hours, got %.2f", total.SupervisionHours)
	}
	if total.OvertimeHours != 2.5 {
		t.Fatalf("want 2.5 overtime hours, got %.2f", total.OvertimeHours)
	}
}

func TestLoadScheduleUnknownProject(t *testing.T) {
	svc, _ := newScheduleFixture(t)
	if _, err := svc.LoadSchedule(context.Background(), "missing", 2026, 3); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("want ErrProjectNotFound, got %v", err)
	}
}

func TestGetCellMissingReturnsZeroShape(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")

	cell, err := svc.GetCell(context.Background(), &dto.CellQuery{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		Date:       "2026-03-10",
	})
	if err != nil {
		t.Fatalf("GetCell: %v", err)
	}
	if cell.ShiftTypeID != nil || cell.LeaveType != nil || cell.OvertimeHours != 0 {
		t.Fatalf("missing cell should come back empty, got %+v", cell)
	}
	if cell.Date != "2026-03-10" {
		t.Fatalf("want date echoed back, got %q", cell.Date)
	}
}

func TestPrimaryActionMalformedDate(t *testing.T) {
	svc, mocks := newScheduleFixture(t)
	mocks.seedProject("proj-1", "emp-1")

	_, err := svc.PrimaryAction(context.Background(), supervisionClick("proj-1", "emp-1", "10.03.2026"))
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}
