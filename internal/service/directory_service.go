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

// ── directory business errors ──

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAlreadyAssigned    = errors.New("employee already has an open assignment on this project")
	ErrAssignmentNotFound = errors.New("no open assignment for this employee on this project")
)

// DirectoryService exposes the project/employee directory the grid needs.
// Batch assignment is best-effort per item and reports each failure
// explicitly instead of continuing silently.
type DirectoryService interface {
	ListProjects(ctx context.Context, companyID string) ([]dto.ProjectResponse, error)
	ListActiveEmployees(ctx context.Context, req *dto.ActiveEmployeesRequest) ([]dto.EmployeeBrief, error)
	AssignEmployees(ctx context.Context, req *dto.BatchAssignRequest) (*dto.BatchResult, error)
	ReleaseEmployee(ctx context.Context, req *dto.ReleaseEmployeeRequest) error
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

func (s *directoryService) ListProjects(ctx context.Context, companyID string) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, dto.ProjectResponse{
			ID:        projects[i].ProjectID,
			CompanyID: projects[i].CompanyID,
			Name:      projects[i].Name,
			IsActive:  projects[i].IsActive,
		})
	}
	return out, nil
}

func (s *directoryService) ListActiveEmployees(ctx context.Context, req *dto.ActiveEmployeesRequest) ([]dto.EmployeeBrief, error) {
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

	out := make([]dto.EmployeeBrief, 0, len(employees))
	for i := range employees {
		out = append(out, dto.EmployeeBrief{
			ID:       employees[i].EmployeeID,
			FullName: employees[i].FullName,
			Title:    employees[i].Title,
		})
	}
	return out, nil
}

func (s *directoryService) AssignEmployees(ctx context.Context, req *dto.BatchAssignRequest) (*dto.BatchResult, error) {
	if _, err := s.repo.Project.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	assignedAt, err := parseDay(req.AssignedAt)
	if err != nil {
		return nil, ErrInvalidDate
	}

	result := &dto.BatchResult{
		Succeeded: make([]string, 0, len(req.EmployeeIDs)),
		Failed:    make([]dto.BatchFailure, 0),
	}

	for _, employeeID := range req.EmployeeIDs {
		if err := s.assignOne(ctx, req.ProjectID, employeeID, assignedAt); err != nil {
			s.logger.Warn("batch assign item failed",
				zap.String("project_id", req.ProjectID),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, dto.BatchFailure{ID: employeeID, Error: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, employeeID)
	}

	return result, nil
}

func (s *directoryService) assignOne(ctx context.Context, projectID, employeeID string, assignedAt time.Time) error {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	open, err := s.repo.Employee.HasOpenAssignment(ctx, projectID, employeeID)
	if err != nil {
		return err
	}
	if open {
		return ErrAlreadyAssigned
	}
	return s.repo.Employee.Assign(ctx, &model.ProjectAssignment{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		AssignedAt: assignedAt,
	})
}

func (s *directoryService) ReleaseEmployee(ctx context.Context, req *dto.ReleaseEmployeeRequest) error {
	releasedAt, err := parseDay(req.ReleasedAt)
	if err != nil {
		return ErrInvalidDate
	}
	if err := s.repo.Employee.Release(ctx, req.ProjectID, req.EmployeeID, releasedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}
