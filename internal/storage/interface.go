package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/slotscore/internal/models"
)

var (
	// ErrNotFound is returned when a log entry or category does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before Init has created the store
	ErrNotInitialized = errors.New("storage not initialized, run 'slotscore init' first")
	// ErrAlreadyExists is returned when adding a category that is already visible
	ErrAlreadyExists = errors.New("already exists")
)

// Provider is the persistence boundary. Dates are calendar days; implementations
// normalize them with utils.DateOf on the way in and out.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Logs. LogProductivity upserts on (user, date, slot) and keeps the ID of
	// an existing entry.
	LogProductivity(entry models.LogEntry) (models.LogEntry, error)
	GetLogsByDate(userID string, date time.Time) ([]models.LogEntry, error)
	GetLogsByDateRange(userID string, start, end time.Time) ([]models.LogEntry, error)
	GetLogBySlot(userID string, date time.Time, slot int) (models.LogEntry, error)
	DeleteLog(userID, id string) error

	// Goals. Users without saved goals get models.DefaultGoals.
	GetUserGoals(userID string) (models.Goals, error)
	SaveUserGoals(userID string, goals models.Goals) error

	// Categories. Deleting a built-in category hides it for that user;
	// deleting a custom one removes it from the list. Adding either name back
	// makes it visible again.
	GetCategories(userID string) ([]models.Category, error)
	AddCategory(userID string, category models.Category) error
	DeleteCategory(userID, name string) error

	// Utils
	GetConfigPath() string
}
