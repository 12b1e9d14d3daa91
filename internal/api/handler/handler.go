package handler

import "github.com/pysgod/MarmaraPMS-sub000/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	ShiftType  *ShiftTypeHandler
	Schedule   *ScheduleHandler
	Attendance *AttendanceHandler
	Directory  *DirectoryHandler
	Export     *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		ShiftType:  NewShiftTypeHandler(svc.ShiftType),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Directory:  NewDirectoryHandler(svc.Directory),
		Export:     NewExportHandler(svc.Export),
	}
}
