package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

// AttendanceRepository reads check-in records written by the external
// QR-scan subsystem. This service never writes them.
type AttendanceRepository interface {
	ListRange(ctx context.Context, projectID string, from, to time.Time) ([]model.AttendanceRecord, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates the GORM-backed AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListRange(ctx context.Context, projectID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND record_date BETWEEN ? AND ?", projectID, from, to).
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}
