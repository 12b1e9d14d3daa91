package dto

// ── shift catalog DTOs ──

// ShiftTypeListRequest lists a project's shift catalog.
type ShiftTypeListRequest struct {
	ProjectID string `form:"project_id" binding:"required,uuid"`
}

// CreateShiftTypeRequest creates a shift type at the end of the catalog.
type CreateShiftTypeRequest struct {
	ProjectID    string `json:"project_id"    binding:"required,uuid"`
	Name         string `json:"name"          binding:"required,min=1,max=100"`
	Color        string `json:"color"         binding:"omitempty,max=20"`
	StartTime    string `json:"start_time"    binding:"required,len=5"` // "HH:MM"
	EndTime      string `json:"end_time"      binding:"required,len=5"` // "HH:MM"
	BreakMinutes int    `json:"break_minutes" binding:"omitempty,min=0,max=480"`
}

// UpdateShiftTypeRequest edits name, color or times of a shift type.
// Changing the time range recomputes the derived duration.
type UpdateShiftTypeRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	Color        *string `json:"color"         binding:"omitempty,max=20"`
	StartTime    *string `json:"start_time"    binding:"omitempty,len=5"`
	EndTime      *string `json:"end_time"      binding:"omitempty,len=5"`
	BreakMinutes *int    `json:"break_minutes" binding:"omitempty,min=0,max=480"`
}

// ReorderShiftTypesRequest re-sequences a project's catalog.
// OrderedIDs must be a permutation of the project's shift type ids.
type ReorderShiftTypesRequest struct {
	ProjectID  string   `json:"project_id"  binding:"required,uuid"`
	OrderedIDs []string `json:"ordered_ids" binding:"required,min=1,dive,uuid"`
}

// ShiftTypeResponse is the catalog entry view.
type ShiftTypeResponse struct {
	ID            string  `json:"id"`
	ProjectID     string  `json:"project_id"`
	Name          string  `json:"name"`
	ShortCode     string  `json:"short_code"`
	Color         string  `json:"color"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	BreakMinutes  int     `json:"break_minutes"`
	OrderIndex    int     `json:"order_index"`
}
