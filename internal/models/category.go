package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/validation"
)

// Category is a label a user can attach to a logged slot
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" validate:"required,max=64"`
	Icon      string     `json:"icon,omitempty"`
	IsDefault bool       `json:"is_default"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewCategory builds a validated custom category.
func NewCategory(name, icon string) (Category, error) {
	c := Category{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Icon:      strings.TrimSpace(icon),
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (c Category) Validate() error {
	if err := validation.ValidateStruct(&c); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	return nil
}

// Label is the icon and name joined for display.
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}
