package jsonstore

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
)

// categoryRecord is one entry of categories.json. NameAr and Color are not
// used here but are written back unchanged.
type categoryRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameAr    string `json:"name_ar,omitempty"`
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (r categoryRecord) category() models.Category {
	return models.Category{
		ID:        r.ID,
		Name:      r.Name,
		Icon:      r.Icon,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

func (s *Store) GetCategories(userID string) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]bool, len(u.hidden))
	for _, name := range u.hidden {
		if canonical, ok := storage.DefaultCategoryName(name); ok {
			hidden[canonical] = true
		}
	}
	var custom []models.Category
	for _, r := range u.categories {
		// built-ins are listed from the fixed set, never from the file
		if _, builtin := storage.DefaultCategoryName(r.Name); builtin {
			continue
		}
		custom = append(custom, r.category())
	}
	return storage.MergeCategories(custom, hidden), nil
}

func (s *Store) AddCategory(userID string, category models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return err
	}

	if name, ok := storage.DefaultCategoryName(category.Name); ok {
		i := slices.IndexFunc(u.hidden, func(h string) bool {
			canonical, _ := storage.DefaultCategoryName(h)
			return canonical == name
		})
		if i < 0 {
			return fmt.Errorf("category %q: %w", name, storage.ErrAlreadyExists)
		}
		next := u.clone()
		next.hidden = slices.Delete(next.hidden, i, i+1)
		return s.commit(userID, next, hiddenFile)
	}

	if slices.ContainsFunc(u.categories, func(r categoryRecord) bool { return r.Name == category.Name }) {
		return fmt.Errorf("category %q: %w", category.Name, storage.ErrAlreadyExists)
	}

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	next := u.clone()
	next.categories = append(next.categories, categoryRecord{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	return s.commit(userID, next, categoriesFile)
}

// DeleteCategory hides a built-in and removes a custom category outright.
func (s *Store) DeleteCategory(userID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return err
	}

	if canonical, ok := storage.DefaultCategoryName(name); ok {
		if slices.Contains(u.hidden, canonical) {
			return nil
		}
		next := u.clone()
		next.hidden = append(next.hidden, canonical)
		return s.commit(userID, next, hiddenFile)
	}

	i := slices.IndexFunc(u.categories, func(r categoryRecord) bool { return r.Name == name })
	if i < 0 {
		return fmt.Errorf("category %q: %w", name, storage.ErrNotFound)
	}
	next := u.clone()
	next.categories = slices.Delete(next.categories, i, i+1)
	return s.commit(userID, next, categoriesFile)
}
