package models

import (
	"fmt"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/validation"
)

// Goals holds a user's score thresholds per period
type Goals struct {
	Daily   int `json:"daily" validate:"gte=0"`
	Weekly  int `json:"weekly" validate:"gte=0"`
	Monthly int `json:"monthly" validate:"gte=0"`
}

func DefaultGoals() Goals {
	return Goals{
		Daily:   constants.DefaultDailyGoal,
		Weekly:  constants.DefaultWeeklyGoal,
		Monthly: constants.DefaultMonthlyGoal,
	}
}

// Validate rejects negative goals. The analytics layer tolerates any value,
// this only guards what users can store.
func (g Goals) Validate() error {
	if err := validation.ValidateStruct(&g); err != nil {
		return fmt.Errorf("invalid goals: %w", err)
	}
	return nil
}
