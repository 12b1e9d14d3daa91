package model

import "time"

// Leave types a supervision cell can carry instead of a shift.
const (
	LeaveWeeklyRest    = "weekly_rest"
	LeavePublicHoliday = "public_holiday"
	LeaveUnpaid        = "unpaid_leave"
	LeaveAnnual        = "annual_leave"
	LeaveSickReport    = "sick_report"
	LeaveMaternity     = "maternity_leave"
)

// LeaveTypes lists every valid leave tag.
var LeaveTypes = []string{
	LeaveWeeklyRest,
	LeavePublicHoliday,
	LeaveUnpaid,
	LeaveAnnual,
	LeaveSickReport,
	LeaveMaternity,
}

// ValidLeaveType reports whether tag is a known leave type.
func ValidLeaveType(tag string) bool {
	for _, t := range LeaveTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// AssignmentCell is one employee-day of the schedule grid.
// Invariant: LeaveType and ShiftTypeID are mutually exclusive (a cell on
// leave has no shift). A missing row means no assignment, no leave, zero
// overtime.
type AssignmentCell struct {
	CellID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"cell_id"`
	ProjectID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_cells_key"    json:"project_id"`
	EmployeeID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_cells_key"    json:"employee_id"`
	Date          time.Time `gorm:"column:cell_date;type:date;not null;uniqueIndex:uq_assignment_cells_key" json:"date"`
	ShiftTypeID   *string   `gorm:"type:uuid;index"                                           json:"shift_type_id,omitempty"`
	LeaveType     *string   `gorm:"type:varchar(20)"                                          json:"leave_type,omitempty"`
	OvertimeHours float64   `gorm:"type:numeric(5,2);not null;default:0"                      json:"overtime_hours"`
	Marked        bool      `gorm:"not null;default:false"                                    json:"marked"`
	Notes         string    `gorm:"type:varchar(500);not null;default:''"                     json:"notes"`
	BaseModel

	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

func (AssignmentCell) TableName() string { return "assignment_cells" }

// IsZero reports whether the cell carries no assignment state at all.
func (c *AssignmentCell) IsZero() bool {
	return c.ShiftTypeID == nil && c.LeaveType == nil &&
		c.OvertimeHours == 0 && !c.Marked && c.Notes == ""
}

// JokerCell is the floating substitute slot for one project-day.
// Same shape as AssignmentCell minus the employee key and the leave tag.
type JokerCell struct {
	CellID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"cell_id"`
	ProjectID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_joker_cells_key"    json:"project_id"`
	Date          time.Time `gorm:"column:cell_date;type:date;not null;uniqueIndex:uq_joker_cells_key" json:"date"`
	ShiftTypeID   *string   `gorm:"type:uuid;index"                                      json:"shift_type_id,omitempty"`
	OvertimeHours float64   `gorm:"type:numeric(5,2);not null;default:0"                 json:"overtime_hours"`
	Marked        bool      `gorm:"not null;default:false"                               json:"marked"`
	Notes         string    `gorm:"type:varchar(500);not null;default:''"                json:"notes"`
	BaseModel

	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

func (JokerCell) TableName() string { return "joker_cells" }

// IsZero reports whether the joker cell carries no state.
func (c *JokerCell) IsZero() bool {
	return c.ShiftTypeID == nil && c.OvertimeHours == 0 && !c.Marked && c.Notes == ""
}
