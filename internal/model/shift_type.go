package model

// ShiftType is a named, timed shift template owned by a project.
// Short codes are sequential ("1".."N") in OrderIndex order and are
// recomputed whenever the catalog is reordered.
type ShiftType struct {
	ShiftTypeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_type_id"`
	ProjectID     string  `gorm:"type:uuid;not null;index"                       json:"project_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	ShortCode     string  `gorm:"type:varchar(10);not null"                      json:"short_code"`
	Color         string  `gorm:"type:varchar(20);not null;default:'#1976d2'"    json:"color"`
	StartTime     string  `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime       string  `gorm:"type:varchar(5);not null"                       json:"end_time"`   // "HH:MM"
	DurationHours float64 `gorm:"type:numeric(5,2);not null"                     json:"duration_hours"`
	BreakMinutes  int     `gorm:"not null;default:0"                             json:"break_minutes"`
	OrderIndex    int     `gorm:"not null"                                       json:"order_index"`
	SoftDeleteModel
}

func (ShiftType) TableName() string { return "shift_types" }
