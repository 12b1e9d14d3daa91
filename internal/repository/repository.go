package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User       UserRepository
	Project    ProjectRepository
	Employee   EmployeeRepository
	ShiftType  ShiftTypeRepository
	Schedule   ScheduleRepository
	Attendance AttendanceRepository
}

// NewRepository wires the GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Project:    NewProjectRepo(db),
		Employee:   NewEmployeeRepo(db),
		ShiftType:  NewShiftTypeRepo(db),
		Schedule:   NewScheduleRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
