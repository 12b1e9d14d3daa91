package model

import "time"

// Recorded attendance statuses produced by the QR check-in subsystem.
const (
	AttendancePresent      = "present"
	AttendanceLate         = "late"
	AttendanceEarlyLeave   = "early_leave"
	AttendanceAbsent       = "absent"
	AttendanceIncomplete   = "incomplete"
	AttendanceWorkedOffDay = "worked_on_off_day"
)

// AttendanceRecord is written by the external check-in subsystem and is
// read-only input for this service.
type AttendanceRecord struct {
	AttendanceID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	ProjectID     string     `gorm:"type:uuid;not null"                             json:"project_id"`
	EmployeeID    string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	Date          time.Time  `gorm:"column:record_date;type:date;not null"          json:"date"`
	Status        string     `gorm:"type:varchar(20);not null"                      json:"status"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime  *time.Time `json:"check_out_time,omitempty"`
	ActualHours   *float64   `gorm:"type:numeric(5,2)"                              json:"actual_hours,omitempty"`
	OvertimeHours float64    `gorm:"type:numeric(5,2);not null;default:0"           json:"overtime_hours"`
	BaseModel
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

// WorkedHours returns the recorded actual hours, falling back to the
// check-in/check-out interval. Either timestamp missing yields 0.
func (r *AttendanceRecord) WorkedHours() float64 {
	if r.ActualHours != nil {
		return *r.ActualHours
	}
	if r.CheckInTime == nil || r.CheckOutTime == nil {
		return 0
	}
	h := r.CheckOutTime.Sub(*r.CheckInTime).Hours()
	if h < 0 {
		return 0
	}
	return h
}
