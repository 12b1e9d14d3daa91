package dto

// ── schedule grid DTOs ──

// Cell rows.
const (
	RowSupervision = "supervision"
	RowOvertime    = "overtime"
)

// Primary-action modes.
const (
	ModeShift = "shift"
	ModeLeave = "leave"
)

// ScheduleQuery selects a project month.
type ScheduleQuery struct {
	ProjectID string `form:"project_id" binding:"required,uuid"`
	Year      int    `form:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `form:"month"      binding:"required,min=1,max=12"`
}

// CalendarExportRequest selects one employee's month for the ICS feed.
type CalendarExportRequest struct {
	ProjectID  string `form:"project_id"  binding:"required,uuid"`
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Year       int    `form:"year"        binding:"required,min=2000,max=2100"`
	Month      int    `form:"month"       binding:"required,min=1,max=12"`
}

// CellQuery addresses a single cell.
type CellQuery struct {
	ProjectID  string `form:"project_id"  binding:"required,uuid"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Date       string `form:"date"        binding:"required,datetime=2006-01-02"`
}

// PrimaryActionRequest is a context-free click on one cell row.
// The interpretation mode is an explicit parameter, never ambient state:
// in shift mode the supervision row cycles through the catalog, in leave
// mode it tags the cell with LeaveType. Joker cells have no leave concept.
type PrimaryActionRequest struct {
	ProjectID  string `json:"project_id"  binding:"required,uuid"`
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"` // empty when Joker
	Joker      bool   `json:"joker"`
	Date       string `json:"date"       binding:"required,datetime=2006-01-02"`
	Row        string `json:"row"        binding:"required,oneof=supervision overtime"`
	Mode       string `json:"mode"       binding:"omitempty,oneof=shift leave"`
	LeaveType  string `json:"leave_type" binding:"omitempty,max=20"`
}

// DirectSetRequest sets a cell row to an explicit value chosen from a menu.
// Supervision row: ShiftTypeID or LeaveType (mutually exclusive, the other
// side is cleared in the same write); both nil clears the row.
// Overtime row: OvertimeHours, or ShiftTypeID meaning that shift's duration;
// both nil clears to 0.
type DirectSetRequest struct {
	ProjectID     string   `json:"project_id"  binding:"required,uuid"`
	EmployeeID    string   `json:"employee_id" binding:"omitempty,uuid"`
	Joker         bool     `json:"joker"`
	Date          string   `json:"date" binding:"required,datetime=2006-01-02"`
	Row           string   `json:"row"  binding:"required,oneof=supervision overtime"`
	ShiftTypeID   *string  `json:"shift_type_id"  binding:"omitempty,uuid"`
	LeaveType     *string  `json:"leave_type"     binding:"omitempty,max=20"`
	OvertimeHours *float64 `json:"overtime_hours" binding:"omitempty,min=0,max=24"`
	Notes         *string  `json:"notes"          binding:"omitempty,max=500"`
}

// CalendarDay is one derived day of the selected month.
type CalendarDay struct {
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
	Date    string `json:"date"` // ISO "2006-01-02"
	Weekend bool   `json:"weekend"`
}

// EmployeeBrief is the grid's employee header entry.
type EmployeeBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Title    string `json:"title"`
}

// CellResponse is one grid cell with catalog attributes resolved.
type CellResponse struct {
	ProjectID     string  `json:"project_id"`
	EmployeeID    string  `json:"employee_id,omitempty"` // empty for joker cells
	Joker         bool    `json:"joker,omitempty"`
	Date          string  `json:"date"`
	ShiftTypeID   *string `json:"shift_type_id,omitempty"`
	ShortCode     string  `json:"short_code,omitempty"`
	Color         string  `json:"color,omitempty"`
	LeaveType     *string `json:"leave_type,omitempty"`
	OvertimeHours float64 `json:"overtime_hours"`
	Marked        bool    `json:"marked,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// EmployeeTotals are the planned sums for one employee over the month.
type EmployeeTotals struct {
	EmployeeID       string  `json:"employee_id"`
	SupervisionHours float64 `json:"supervision_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
}

// ScheduleGridResponse is the full month view.
// Cells is keyed employee id → ISO date; Jokers is keyed ISO date.
type ScheduleGridResponse struct {
	ProjectID  string                             `json:"project_id"`
	Year       int                                `json:"year"`
	Month      int                                `json:"month"`
	Employees  []EmployeeBrief                    `json:"employees"`
	Days       []CalendarDay                      `json:"days"`
	Cells      map[string]map[string]CellResponse `json:"cells"`
	Jokers     map[string]CellResponse            `json:"jokers"`
	Totals     []EmployeeTotals                   `json:"totals"`
	ShiftTypes []ShiftTypeResponse                `json:"shift_types"`
}
