package model

import "time"

// Company groups projects; kept minimal, shift catalogs are project-scoped.
type Company struct {
	CompanyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	SoftDeleteModel
}

func (Company) TableName() string { return "companies" }

// Project is the scope that owns shift types and schedule cells.
type Project struct {
	ProjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	CompanyID string `gorm:"type:uuid;not null"                             json:"company_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

func (Project) TableName() string { return "projects" }

// Employee is a scheduled person from the personnel directory.
type Employee struct {
	EmployeeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FullName   string `gorm:"type:varchar(200);not null"                     json:"full_name"`
	Title      string `gorm:"type:varchar(100)"                              json:"title"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

func (Employee) TableName() string { return "employees" }

// ProjectAssignment records an employee's membership on a project.
// An employee is active on a project for a month when the assignment
// interval overlaps that month.
type ProjectAssignment struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	ProjectID    string     `gorm:"type:uuid;not null"                             json:"project_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	AssignedAt   time.Time  `gorm:"type:date;not null"                             json:"assigned_at"`
	ReleasedAt   *time.Time `gorm:"type:date"                                      json:"released_at,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (ProjectAssignment) TableName() string { return "project_assignments" }
