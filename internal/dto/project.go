package dto

// ── directory DTOs ──

// ProjectResponse is the public view of a project.
type ProjectResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

// ActiveEmployeesRequest lists employees active on a project for a month.
type ActiveEmployeesRequest struct {
	ProjectID string `form:"project_id" binding:"required,uuid"`
	Year      int    `form:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `form:"month"      binding:"required,min=1,max=12"`
}

// BatchAssignRequest assigns several employees to a project at once.
type BatchAssignRequest struct {
	ProjectID   string   `json:"project_id"   binding:"required,uuid"`
	EmployeeIDs []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	AssignedAt  string   `json:"assigned_at"  binding:"required,datetime=2006-01-02"`
}

// ReleaseEmployeeRequest ends an employee's project assignment.
type ReleaseEmployeeRequest struct {
	ProjectID  string `json:"project_id"  binding:"required,uuid"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	ReleasedAt string `json:"released_at" binding:"required,datetime=2006-01-02"`
}

// BatchFailure names one failed item of a batch operation.
type BatchFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BatchResult reports a best-effort batch operation per item, so the
// caller can see exactly which entries failed instead of a silent
// partial success.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}
