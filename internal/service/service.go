package service

import (
	"go.uber.org/zap"

	"github.com/pysgod/MarmaraPMS-sub000/config"
	"github.com/pysgod/MarmaraPMS-sub000/internal/repository"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/jwt"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth       AuthService
	ShiftType  ShiftTypeService
	Schedule   ScheduleService
	Attendance AttendanceService
	Directory  DirectoryService
	Export     ExportService
}

// NewService wires the service layer.
// rdb may be nil; token revocation then degrades to TTL-only expiry.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		ShiftType:  NewShiftTypeService(cfg, repo, logger),
		Schedule:   NewScheduleService(cfg, repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Directory:  NewDirectoryService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
