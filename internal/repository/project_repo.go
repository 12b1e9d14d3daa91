package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

// ProjectRepository is the project directory data access interface.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, companyID string) ([]model.Project, error)
}

// EmployeeRepository is the personnel directory data access interface.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	// ListActiveOnProject returns employees whose project assignment
	// overlaps the [from, to] date range.
	ListActiveOnProject(ctx context.Context, projectID string, from, to time.Time) ([]model.Employee, error)
	Assign(ctx context.Context, assignment *model.ProjectAssignment) error
	// Release closes the open assignment of an employee on a project.
	Release(ctx context.Context, projectID, employeeID string, releasedAt time.Time) error
	HasOpenAssignment(ctx context.Context, projectID, employeeID string) (bool, error)
}

// ── Project ──

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo creates the GORM-backed ProjectRepository.
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("project_id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) List(ctx context.Context, companyID string) ([]model.Project, error) {
	var projects []model.Project
	db := r.db.WithContext(ctx).Where("is_active = ?", true)
	if companyID != "" {
		db = db.Where("company_id = ?", companyID)
	}
	err := db.Order("name ASC").Find(&projects).Error
	return projects, err
}

// ── Employee ──

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo creates the GORM-backed EmployeeRepository.
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).Where("employee_id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) ListActiveOnProject(ctx context.Context, projectID string, from, to time.Time) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Joins("JOIN project_assignments pa ON pa.employee_id = employees.employee_id").
		Where("pa.project_id = ?", projectID).
		Where("pa.assigned_at <= ?", to).
		Where("pa.released_at IS NULL OR pa.released_at >= ?", from).
		Where("employees.is_active = ?", true).
		Distinct().
		Order("employees.full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Assign(ctx context.Context, assignment *model.ProjectAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *employeeRepo) Release(ctx context.Context, projectID, employeeID string, releasedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProjectAssignment{}).
		Where("project_id = ? AND employee_id = ? AND released_at IS NULL", projectID, employeeID).
		Update("released_at", releasedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) HasOpenAssignment(ctx context.Context, projectID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProjectAssignment{}).
		Where("project_id = ? AND employee_id = ? AND released_at IS NULL", projectID, employeeID).
		Count(&count).Error
	return count > 0, err
}
