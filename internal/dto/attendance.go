package dto

// ── attendance reconciliation DTOs ──

// AttendanceOverviewRequest selects a project month.
type AttendanceOverviewRequest struct {
	ProjectID string `form:"project_id" binding:"required,uuid"`
	Year      int    `form:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `form:"month"      binding:"required,min=1,max=12"`
}

// DayStatus is the reconciled view of one employee-day.
type DayStatus struct {
	Date string `json:"date"`
	// Display combines plan, leave and attendance into one label
	// (present, late, absent, pending, planned, no_shift, a leave type, ...).
	Display string `json:"display"`
	// PlannedClass classifies plan-vs-actual: future, complete, partial,
	// none, or empty when nothing was planned.
	PlannedClass string `json:"planned_class"`
	Weekend      bool   `json:"weekend"`
}

// EmployeeAttendance is one employee's reconciled month.
type EmployeeAttendance struct {
	EmployeeID    string      `json:"employee_id"`
	FullName      string      `json:"full_name"`
	Days          []DayStatus `json:"days"`
	PresentCount  int         `json:"present_count"`
	AbsentCount   int         `json:"absent_count"`
	TotalOvertime float64     `json:"total_overtime"` // recorded actuals
}

// AttendanceOverviewResponse is the reconciled month for a project.
type AttendanceOverviewResponse struct {
	ProjectID string               `json:"project_id"`
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	Employees []EmployeeAttendance `json:"employees"`
}
