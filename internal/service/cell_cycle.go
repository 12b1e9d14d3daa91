package service

import (
	"math"

	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
)

// The cell state machine. These are pure functions of (catalog, current
// state); the schedule service applies them inside a locked read-modify-write
// so concurrent clicks on the same cell serialize.

// nextShiftRef returns the supervision assignment after one primary action:
// none → shift[0] → … → shift[N-1] → none, in catalog order. A reference
// that is no longer in the catalog counts as none, so the next state is
// shift[0]. An empty catalog yields nil (callers degrade to the mark toggle).
func nextShiftRef(catalog []model.ShiftType, current *string) *string {
	if len(catalog) == 0 {
		return nil
	}
	if current == nil {
		return &catalog[0].ShiftTypeID
	}
	for i := range catalog {
		if catalog[i].ShiftTypeID == *current {
			if i == len(catalog)-1 {
				return nil
			}
			return &catalog[i+1].ShiftTypeID
		}
	}
	// stale reference
	return &catalog[0].ShiftTypeID
}

// nextOvertimeHours returns the overtime value after one primary action:
// 0 → hours(shift[0]) → … → hours(shift[N-1]) → 0. The current position is
// the first catalog duration within tolerance of the cell's value; no match
// counts as position 0.
func nextOvertimeHours(catalog []model.ShiftType, current, tolerance float64) float64 {
	if len(catalog) == 0 {
		return 0
	}
	for i := range catalog {
		if math.Abs(current-catalog[i].DurationHours) <= tolerance {
			if i == len(catalog)-1 {
				return 0
			}
			return catalog[i+1].DurationHours
		}
	}
	return catalog[0].DurationHours
}

// shiftDuration resolves a shift reference to its catalog duration;
// nil or stale references contribute 0.
func shiftDuration(catalog []model.ShiftType, ref *string) float64 {
	if ref == nil {
		return 0
	}
	for i := range catalog {
		if catalog[i].ShiftTypeID == *ref {
			return catalog[i].DurationHours
		}
	}
	return 0
}
