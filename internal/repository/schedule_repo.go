package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

// ScheduleRepository is the schedule grid data access interface.
// Cell mutations go through MutateCell/MutateJoker: the current row is
// read under a row lock, the caller's function computes the next state,
// and the result is written back in the same transaction. Two concurrent
// primary actions on the same cell therefore serialize instead of losing
// one update.
type ScheduleRepository interface {
	GetCell(ctx context.Context, projectID, employeeID string, date time.Time) (*model.AssignmentCell, error)
	GetJoker(ctx context.Context, projectID string, date time.Time) (*model.JokerCell, error)
	ListCells(ctx context.Context, projectID string, from, to time.Time) ([]model.AssignmentCell, error)
	ListJokers(ctx context.Context, projectID string, from, to time.Time) ([]model.JokerCell, error)
	MutateCell(ctx context.Context, projectID, employeeID string, date time.Time, fn func(*model.AssignmentCell) error) (*model.AssignmentCell, error)
	MutateJoker(ctx context.Context, projectID string, date time.Time, fn func(*model.JokerCell) error) (*model.JokerCell, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the GORM-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetCell(ctx context.Context, projectID, employeeID string, date time.Time) (*model.AssignmentCell, error) {
	var cell model.AssignmentCell
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ? AND cell_date = ?", projectID, employeeID, date).
		First(&cell).Error
	if err != nil {
		return nil, err
	}
	return &cell, nil
}

func (r *scheduleRepo) GetJoker(ctx context.Context, projectID string, date time.Time) (*model.JokerCell, error) {
	var cell model.JokerCell
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND cell_date = ?", projectID, date).
		First(&cell).Error
	if err != nil {
		return nil, err
	}
	return &cell, nil
}

func (r *scheduleRepo) ListCells(ctx context.Context, projectID string, from, to time.Time) ([]model.AssignmentCell, error) {
	var cells []model.AssignmentCell
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND cell_date BETWEEN ? AND ?", projectID, from, to).
		Order("cell_date ASC").
		Find(&cells).Error
	return cells, err
}

func (r *scheduleRepo) ListJokers(ctx context.Context, projectID string, from, to time.Time) ([]model.JokerCell, error) {
	var cells []model.JokerCell
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND cell_date BETWEEN ? AND ?", projectID, from, to).
		Order("cell_date ASC").
		Find(&cells).Error
	return cells, err
}

func (r *scheduleRepo) MutateCell(ctx context.Context, projectID, employeeID string, date time.Time, fn func(*model.AssignmentCell) error) (*model.AssignmentCell, error) {
	var out *model.AssignmentCell
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cell model.AssignmentCell
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND employee_id = ? AND cell_date = ?", projectID, employeeID, date).
			First(&cell).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cell = model.AssignmentCell{ProjectID: projectID, EmployeeID: employeeID, Date: date}
		case err != nil:
			return err
		}

		if err := fn(&cell); err != nil {
			return err
		}

		// Concurrent first writes to the same missing cell race on the
		// unique key; the loser surfaces the constraint error to the caller.
		if cell.CellID == "" {
			if err := tx.Create(&cell).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&cell).Error; err != nil {
			return err
		}

		out = &cell
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *scheduleRepo) MutateJoker(ctx context.Context, projectID string, date time.Time, fn func(*model.JokerCell) error) (*model.JokerCell, error) {
	var out *model.JokerCell
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cell model.JokerCell
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND cell_date = ?", projectID, date).
			First(&cell).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cell = model.JokerCell{ProjectID: projectID, Date: date}
		case err != nil:
			return err
		}

		if err := fn(&cell); err != nil {
			return err
		}

		if cell.CellID == "" {
			if err := tx.Create(&cell).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&cell).Error; err != nil {
			return err
		}

		out = &cell
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
