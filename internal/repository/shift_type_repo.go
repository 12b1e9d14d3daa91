package repository

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

// ShiftTypeRepository is the shift catalog data access interface.
type ShiftTypeRepository interface {
	Create(ctx context.Context, shiftType *model.ShiftType) error
	GetByID(ctx context.Context, id string) (*model.ShiftType, error)
	// ListByProject returns the catalog in declared order.
	ListByProject(ctx context.Context, projectID string) ([]model.ShiftType, error)
	Update(ctx context.Context, shiftType *model.ShiftType) error
	// Delete removes the shift type and re-sequences the surviving
	// catalog's order indexes and short codes back to 1..N in the same
	// transaction.
	Delete(ctx context.Context, id string) error
	// Reorder re-sequences order indexes and short codes 1..N in a single
	// transaction. orderedIDs must match the project's catalog exactly.
	Reorder(ctx context.Context, projectID string, orderedIDs []string) error
	// ReferenceCount counts live assignment and joker cells referencing
	// the shift type.
	ReferenceCount(ctx context.Context, id string) (int64, error)
}

type shiftTypeRepo struct {
	db *gorm.DB
}

// NewShiftTypeRepo creates the GORM-backed ShiftTypeRepository.
func NewShiftTypeRepo(db *gorm.DB) ShiftTypeRepository {
	return &shiftTypeRepo{db: db}
}

func (r *shiftTypeRepo) Create(ctx context.Context, shiftType *model.ShiftType) error {
	return r.db.WithContext(ctx).Create(shiftType).Error
}

func (r *shiftTypeRepo) GetByID(ctx context.Context, id string) (*model.ShiftType, error) {
	var shiftType model.ShiftType
	err := r.db.WithContext(ctx).Where("shift_type_id = ?", id).First(&shiftType).Error
	if err != nil {
		return nil, err
	}
	return &shiftType, nil
}

func (r *shiftTypeRepo) ListByProject(ctx context.Context, projectID string) ([]model.ShiftType, error) {
	var shiftTypes []model.ShiftType
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("order_index ASC").
		Find(&shiftTypes).Error
	return shiftTypes, err
}

func (r *shiftTypeRepo) Update(ctx context.Context, shiftType *model.ShiftType) error {
	return r.db.WithContext(ctx).Save(shiftType).Error
}

func (r *shiftTypeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st model.ShiftType
		if err := tx.Where("shift_type_id = ?", id).First(&st).Error; err != nil {
			return err
		}
		if err := tx.Where("shift_type_id = ?", id).Delete(&model.ShiftType{}).Error; err != nil {
			return err
		}

		// Close the gap so Create's next code of len+1 stays unique.
		var remaining []model.ShiftType
		if err := tx.Where("project_id = ?", st.ProjectID).
			Order("order_index ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if err := tx.Model(&model.ShiftType{}).
				Where("shift_type_id = ?", remaining[i].ShiftTypeID).
				Updates(map[string]interface{}{
					"order_index": i + 1,
					"short_code":  strconv.Itoa(i + 1),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *shiftTypeRepo) Reorder(ctx context.Context, projectID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ShiftType{}).
			Where("project_id = ?", projectID).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(orderedIDs)) {
			return fmt.Errorf("reorder list has %d entries, catalog has %d", len(orderedIDs), count)
		}

		for i, id := range orderedIDs {
			result := tx.Model(&model.ShiftType{}).
				Where("shift_type_id = ? AND project_id = ?", id, projectID).
				Updates(map[string]interface{}{
					"order_index": i + 1,
					"short_code":  strconv.Itoa(i + 1),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *shiftTypeRepo) ReferenceCount(ctx context.Context, id string) (int64, error) {
	var cells, jokers int64
	if err := r.db.WithContext(ctx).
		Model(&model.AssignmentCell{}).
		Where("shift_type_id = ?", id).
		Count(&cells).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.JokerCell{}).
		Where("shift_type_id = ?", id).
		Count(&jokers).Error; err != nil {
		return 0, err
	}
	return cells + jokers, nil
}
