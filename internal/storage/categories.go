package storage

import (
	"sort"
	"strings"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
)

// DefaultCategoryName returns the canonical spelling of a built-in category,
// matched case-insensitively.
func DefaultCategoryName(name string) (string, bool) {
	for _, def := range constants.DefaultCategories {
		if strings.EqualFold(def.Name, strings.TrimSpace(name)) {
			return def.Name, true
		}
	}
	return "", false
}

// MergeCategories builds the visible category list: built-ins not in hidden,
// in their fixed order, followed by live custom categories sorted by name.
func MergeCategories(custom []models.Category, hidden map[string]bool) []models.Category {
	out := make([]models.Category, 0, len(constants.DefaultCategories)+len(custom))
	for _, def := range constants.DefaultCategories {
		if hidden[def.Name] {
			continue
		}
		out = append(out, models.Category{
			ID:        "default:" + strings.ToLower(def.Name),
			Name:      def.Name,
			Icon:      def.Icon,
			IsDefault: true,
		})
	}

	live := make([]models.Category, 0, len(custom))
	for _, c := range custom {
		if c.DeletedAt == nil {
			live = append(live, c)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return strings.ToLower(live[i].Name) < strings.ToLower(live[j].Name)
	})
	return append(out, live...)
}
