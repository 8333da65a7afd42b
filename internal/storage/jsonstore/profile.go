package jsonstore

import (
	"fmt"
	"maps"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/slotscore/internal/models"
)

// profile is profile.json kept as raw fields so keys written by other tools
// survive a goal update.
type profile map[string]json.RawMessage

var goalKeys = []struct {
	key   string
	field func(*models.Goals) *int
}{
	{"daily_goal", func(g *models.Goals) *int { return &g.Daily }},
	{"weekly_goal", func(g *models.Goals) *int { return &g.Weekly }},
	{"monthly_goal", func(g *models.Goals) *int { return &g.Monthly }},
}

// goals overlays the stored goal fields on the defaults.
func (p profile) goals() (models.Goals, error) {
	goals := models.DefaultGoals()
	for _, k := range goalKeys {
		raw, ok := p[k.key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, k.field(&goals)); err != nil {
			return models.Goals{}, fmt.Errorf("invalid %s in %s: %w", k.key, profileFile, err)
		}
	}
	return goals, nil
}

// withGoals returns a copy of p with the goal fields replaced.
func (p profile) withGoals(userID string, goals models.Goals, now time.Time) (profile, error) {
	next := maps.Clone(p)
	if next == nil {
		next = make(profile)
	}

	set := func(key string, v interface{}) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		next[key] = raw
		return nil
	}

	stamp := now.Format(time.RFC3339Nano)
	if _, ok := next["id"]; !ok {
		if err := set("id", userID); err != nil {
			return nil, err
		}
	}
	if _, ok := next["created_at"]; !ok {
		if err := set("created_at", stamp); err != nil {
			return nil, err
		}
	}
	for _, k := range goalKeys {
		if err := set(k.key, *k.field(&goals)); err != nil {
			return nil, err
		}
	}
	if err := set("updated_at", stamp); err != nil {
		return nil, err
	}
	return next, nil
}
