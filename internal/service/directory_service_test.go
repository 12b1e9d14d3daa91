package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pysgod/MarmaraPMS-sub000/internal/dto"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

func newDirectoryFixture(t *testing.T) (DirectoryService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepos()
	return NewDirectoryService(repo, zap.NewNop()), mocks
}

func TestAssignEmployeesBatchReportsPerItem(t *testing.T) {
	svc, mocks := newDirectoryFixture(t)
	mocks.seedProject("proj-1", "emp-assigned")
	mocks.employees.employees["emp-new"] = &model.Employee{
		EmployeeID: "emp-new", FullName: "New Employee", IsActive: true,
	}

	result, err := svc.AssignEmployees(context.Background(), &dto.BatchAssignRequest{
		ProjectID:   "proj-1",
		EmployeeIDs: []string{"emp-new", "emp-assigned", "emp-missing"},
		AssignedAt:  "2026-03-01",
	})
	if err != nil {
		t.Fatalf("AssignEmployees: %v", err)
	}

	if len(result.Succeeded) != 1 || result.Succeeded[0] != "emp-new" {
		t.Fatalf("want only emp-new to succeed, got %v", result.Succeeded)
	}
	if len(result.Failed) != 2 {
		t.Fatalf("want 2 failures, got %v", result.Failed)
	}
	failures := make(map[string]string, len(result.Failed))
	for _, f := range result.Failed {
		failures[f.ID] = f.Error
	}
	if failures["emp-assigned"] != ErrAlreadyAssigned.Error() {
		t.Fatalf("emp-assigned: want already-assigned error, got %q", failures["emp-assigned"])
	}
	if failures["emp-missing"] != ErrEmployeeNotFound.Error() {
		t.Fatalf("emp-missing: want not-found error, got %q", failures["emp-missing"])
	}
}

func TestAssignEmployeesUnknownProject(t *testing.T) {
	svc, _ := newDirectoryFixture(t)

	_, err := svc.AssignEmployees(context.Background(), &dto.BatchAssignRequest{
		ProjectID:   "missing",
		EmployeeIDs: []string{"emp-1"},
		AssignedAt:  "2026-03-01",
	})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("want ErrProjectNotFound, got %v", err)
	}
}

func TestReleaseEmployeeEndsAssignment(t *testing.T) {
	svc, mocks := newDirectoryFixture(t)
	mocks.seedProject("proj-1", "emp-1")

	err := svc.ReleaseEmployee(context.Background(), &dto.ReleaseEmployeeRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		ReleasedAt: "2026-03-15",
	})
	if err != nil {
		t.Fatalf("ReleaseEmployee: %v", err)
	}

	open, _ := mocks.employees.HasOpenAssignment(context.Background(), "proj-1", "emp-1")
	if open {
		t.Fatal("assignment should be closed")
	}

	// releasing again has nothing to close
	err = svc.ReleaseEmployee(context.Background(), &dto.ReleaseEmployeeRequest{
		ProjectID:  "proj-1",
		EmployeeID: "emp-1",
		ReleasedAt: "2026-03-16",
	})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("want ErrAssignmentNotFound, got %v", err)
	}
}

func TestListActiveEmployeesHonorsAssignmentWindow(t *testing.T) {
	svc, mocks := newDirectoryFixture(t)
	mocks.seedProject("proj-1", "emp-current")

	// released before the queried month, must not appear
	mocks.employees.employees["emp-gone"] = &model.Employee{
		EmployeeID: "emp-gone", FullName: "Gone Employee", IsActive: true,
	}
	released := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	mocks.employees.assignments = append(mocks.employees.assignments, &model.ProjectAssignment{
		AssignmentID: "assign-gone",
		ProjectID:    "proj-1",
		EmployeeID:   "emp-gone",
		AssignedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ReleasedAt:   &released,
	})

	out, err := svc.ListActiveEmployees(context.Background(), &dto.ActiveEmployeesRequest{
		ProjectID: "proj-1",
		Year:      2026,
		Month:     3,
	})
	if err != nil {
		t.Fatalf("ListActiveEmployees: %v", err)
	}
	if len(out) != 1 || out[0].ID != "emp-current" {
		t.Fatalf("want only emp-current, got %v", out)
	}
}

func TestListProjects(t *testing.T) {
	svc, mocks := newDirectoryFixture(t)
	mocks.seedProject("proj-a")
	mocks.seedProject("proj-b")

	out, err := svc.ListProjects(context.Background(), "")
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 projects, got %d", len(out))
	}
}
