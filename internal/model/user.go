package model

// User roles.
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleViewer  = "viewer"
)

// User is a panel login account (not a scheduled employee).
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Name         string `gorm:"type:varchar(200);not null"                     json:"name"`
	Role         string `gorm:"type:varchar(20);not null;default:'viewer'"     json:"role"` // admin | planner | viewer
	SoftDeleteModel
}

func (User) TableName() string { return "users" }
