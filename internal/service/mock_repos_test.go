package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, companyID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if companyID == "" || p.CompanyID == companyID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees   map[string]*model.Employee
	assignments []*model.ProjectAssignment
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) ListActiveOnProject(_ context.Context, projectID string, from, to time.Time) ([]model.Employee, error) {
	seen := make(map[string]bool)
	var result []model.Employee
	for _, a := range m.assignments {
		if a.ProjectID != projectID || seen[a.EmployeeID] {
			continue
		}
		if a.AssignedAt.After(to) {
			continue
		}
		if a.ReleasedAt != nil && a.ReleasedAt.Before(from) {
			continue
		}
		if e, ok := m.employees[a.EmployeeID]; ok && e.IsActive {
			seen[a.EmployeeID] = true
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockEmployeeRepo) Assign(_ context.Context, assignment *model.ProjectAssignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = fmt.Sprintf("assign-%d", len(m.assignments)+1)
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

func (m *mockEmployeeRepo) Release(_ context.Context, projectID, employeeID string, releasedAt time.Time) error {
	for _, a := range m.assignments {
		if a.ProjectID == projectID && a.EmployeeID == employeeID && a.ReleasedAt == nil {
			t := releasedAt
			a.ReleasedAt = &t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) HasOpenAssignment(_ context.Context, projectID, employeeID string) (bool, error) {
	for _, a := range m.assignments {
		if a.ProjectID == projectID && a.EmployeeID == employeeID && a.ReleasedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	cells  map[string]*model.AssignmentCell // projectID|employeeID|date
	jokers map[string]*model.JokerCell      // projectID|date
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		cells:  make(map[string]*model.AssignmentCell),
		jokers: make(map[string]*model.JokerCell),
	}
}

func cellKey(projectID, employeeID string, date time.Time) string {
	return projectID + "|" + employeeID + "|" + date.Format("2006-01-02")
}

func jokerKey(projectID string, date time.Time) string {
	return projectID + "|" + date.Format("2006-01-02")
}

func (m *mockScheduleRepo) GetCell(_ context.Context, projectID, employeeID string, date time.Time) (*model.AssignmentCell, error) {
	if c, ok := m.cells[cellKey(projectID, employeeID, date)]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetJoker(_ context.Context, projectID string, date time.Time) (*model.JokerCell, error) {
	if c, ok := m.jokers[jokerKey(projectID, date)]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListCells(_ context.Context, projectID string, from, to time.Time) ([]model.AssignmentCell, error) {
	var result []model.AssignmentCell
	for _, c := range m.cells {
		if c.ProjectID == projectID && !c.Date.Before(from) && !c.Date.After(to) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockScheduleRepo) ListJokers(_ context.Context, projectID string, from, to time.Time) ([]model.JokerCell, error) {
	var result []model.JokerCell
	for _, c := range m.jokers {
		if c.ProjectID == projectID && !c.Date.Before(from) && !c.Date.After(to) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockScheduleRepo) MutateCell(_ context.Context, projectID, employeeID string, date time.Time, fn func(*model.AssignmentCell) error) (*model.AssignmentCell, error) {
	key := cellKey(projectID, employeeID, date)
	cell, ok := m.cells[key]
	if !ok {
		cell = &model.AssignmentCell{ProjectID: projectID, EmployeeID: employeeID, Date: date}
	}
	if err := fn(cell); err != nil {
		return nil, err
	}
	if cell.CellID == "" {
		cell.CellID = "cell-" + strconv.Itoa(len(m.cells)+1)
	}
	m.cells[key] = cell
	copied := *cell
	return &copied, nil
}

func (m *mockScheduleRepo) MutateJoker(_ context.Context, projectID string, date time.Time, fn func(*model.JokerCell) error) (*model.JokerCell, error) {
	key := jokerKey(projectID, date)
	cell, ok := m.jokers[key]
	if !ok {
		cell = &model.JokerCell{ProjectID: projectID, Date: date}
	}
	if err := fn(cell); err != nil {
		return nil, err
	}
	if cell.CellID == "" {
		cell.CellID = "joker-" + strconv.Itoa(len(m.jokers)+1)
	}
	m.jokers[key] = cell
	copied := *cell
	return &copied, nil
}

// ── Mock ShiftTypeRepository ──

type mockShiftTypeRepo struct {
	shiftTypes map[string]*model.ShiftType
	nextID     int
	schedule   *mockScheduleRepo // for reference counting; may be nil
}

func newMockShiftTypeRepo(schedule *mockScheduleRepo) *mockShiftTypeRepo {
	return &mockShiftTypeRepo{
		shiftTypes: make(map[string]*model.ShiftType),
		schedule:   schedule,
	}
}

func (m *mockShiftTypeRepo) Create(_ context.Context, shiftType *model.ShiftType) error {
	if shiftType.ShiftTypeID == "" {
		// Monotonic ids; len-based ids would collide after a delete.
		m.nextID++
		shiftType.ShiftTypeID = fmt.Sprintf("shift-%d", m.nextID)
	}
	m.shiftTypes[shiftType.ShiftTypeID] = shiftType
	return nil
}

func (m *mockShiftTypeRepo) GetByID(_ context.Context, id string) (*model.ShiftType, error) {
	if st, ok := m.shiftTypes[id]; ok {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftTypeRepo) ListByProject(_ context.Context, projectID string) ([]model.ShiftType, error) {
	var result []model.ShiftType
	for _, st := range m.shiftTypes {
		if st.ProjectID == projectID {
			result = append(result, *st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (m *mockShiftTypeRepo) Update(_ context.Context, shiftType *model.ShiftType) error {
	m.shiftTypes[shiftType.ShiftTypeID] = shiftType
	return nil
}

func (m *mockShiftTypeRepo) Delete(_ context.Context, id string) error {
	st, ok := m.shiftTypes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.shiftTypes, id)

	// Mirror the real repository: survivors are re-sequenced to 1..N.
	var remaining []*model.ShiftType
	for _, s := range m.shiftTypes {
		if s.ProjectID == st.ProjectID {
			remaining = append(remaining, s)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].OrderIndex < remaining[j].OrderIndex })
	for i, s := range remaining {
		s.OrderIndex = i + 1
		s.ShortCode = strconv.Itoa(i + 1)
	}
	return nil
}

func (m *mockShiftTypeRepo) Reorder(_ context.Context, projectID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		st, ok := m.shiftTypes[id]
		if !ok || st.ProjectID != projectID {
			return gorm.ErrRecordNotFound
		}
		st.OrderIndex = i + 1
		st.ShortCode = strconv.Itoa(i + 1)
	}
	return nil
}

func (m *mockShiftTypeRepo) ReferenceCount(_ context.Context, id string) (int64, error) {
	if m.schedule == nil {
		return 0, nil
	}
	var count int64
	for _, c := range m.schedule.cells {
		if c.ShiftTypeID != nil && *c.ShiftTypeID == id {
			count++
		}
	}
	for _, c := range m.schedule.jokers {
		if c.ShiftTypeID != nil && *c.ShiftTypeID == id {
			count++
		}
	}
	return count, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []model.AttendanceRecord
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) ListRange(_ context.Context, projectID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.ProjectID == projectID && !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── fixture ──

type mockRepos struct {
	users      *mockUserRepo
	projects   *mockProjectRepo
	employees  *mockEmployeeRepo
	shiftTypes *mockShiftTypeRepo
	schedule   *mockScheduleRepo
	attendance *mockAttendanceRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	schedule := newMockScheduleRepo()
	mocks := &mockRepos{
		users:      newMockUserRepo(),
		projects:   newMockProjectRepo(),
		employees:  newMockEmployeeRepo(),
		shiftTypes: newMockShiftTypeRepo(schedule),
		schedule:   schedule,
		attendance: newMockAttendanceRepo(),
	}
	repo := &repository.Repository{
		User:       mocks.users,
		Project:    mocks.projects,
		Employee:   mocks.employees,
		ShiftType:  mocks.shiftTypes,
		Schedule:   mocks.schedule,
		Attendance: mocks.attendance,
	}
	return repo, mocks
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// seedProject adds a project with one open-ended employee assignment.
func (m *mockRepos) seedProject(projectID string, employeeIDs ...string) {
	m.projects.projects[projectID] = &model.Project{
		ProjectID: projectID,
		CompanyID: "company-1",
		Name:      "Project " + projectID,
		IsActive:  true,
	}
	for _, id := range employeeIDs {
		m.employees.employees[id] = &model.Employee{
			EmployeeID: id,
			FullName:   "Employee " + id,
			IsActive:   true,
		}
		m.employees.assignments = append(m.employees.assignments, &model.ProjectAssignment{
			AssignmentID: "assign-" + id,
			ProjectID:    projectID,
			EmployeeID:   id,
			AssignedAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
}

// seedShift adds a catalog entry at the next order position.
func (m *mockRepos) seedShift(projectID, id, name, start, end string, duration float64) *model.ShiftType {
	order := 0
	for _, st := range m.shiftTypes.shiftTypes {
		if st.ProjectID == projectID {
			order++
		}
	}
	st := &model.ShiftType{
		ShiftTypeID:   id,
		ProjectID:     projectID,
		Name:          name,
		ShortCode:     strconv.Itoa(order + 1),
		Color:         "#1976d2",
		StartTime:     start,
		EndTime:       end,
		DurationHours: duration,
		OrderIndex:    order + 1,
	}
	m.shiftTypes.shiftTypes[id] = st
	return st
}
