package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

// LogFormModel holds the values edited by the slot logging form.
type LogFormModel struct {
	Date     string
	Slot     int
	Score    int
	Category string
	Notes    string
}

// NewLogFormModel starts the form on the given day and slot.
func NewLogFormModel(today time.Time, slot int) *LogFormModel {
	return &LogFormModel{
		Date:     utils.FormatDate(today),
		Slot:     slot,
		Score:    2,
		Category: constants.DefaultCategory,
	}
}

// NewLogForm builds the form used by 'log --interactive' and the TUI.
func NewLogForm(fm *LogFormModel, categories []models.Category) *huh.Form {
	slots := make([]huh.Option[int], constants.TotalTimeSlots)
	for slot := range slots {
		slots[slot] = huh.NewOption(utils.SlotLabel(slot), slot)
	}

	scores := make([]huh.Option[int], 0, constants.MaxSlotScore+1)
	for score := constants.MaxSlotScore; score >= constants.MinSlotScore; score-- {
		level := analytics.ScoreLevel(score)
		scores = append(scores, huh.NewOption(fmt.Sprintf("%d  %s %s", score, level.Emoji, level.Name), score))
	}

	cats := []huh.Option[string]{huh.NewOption(constants.DefaultCategory, constants.DefaultCategory)}
	for _, c := range categories {
		cats = append(cats, huh.NewOption(c.Label(), c.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := utils.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Slot").
				Options(slots...).
				Height(8).
				Value(&fm.Slot),
			huh.NewSelect[int]().
				Title("Score").
				Options(scores...).
				Value(&fm.Score),
			huh.NewSelect[string]().
				Title("Category").
				Options(cats...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}
