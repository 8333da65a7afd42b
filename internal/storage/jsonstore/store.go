// Package jsonstore keeps each user's history as flat JSON files, one
// directory per user:
//
//	<dir>/<user>/productivity_logs.json
//	<dir>/<user>/profile.json
//	<dir>/<user>/categories.json
//	<dir>/<user>/hidden_defaults.json
//
// Dates are stored as YYYY-MM-DD strings. Profile keys this package does not
// know about are preserved when goals are saved.
package jsonstore

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/utils"
)

const (
	logsFile       = "productivity_logs.json"
	profileFile    = "profile.json"
	categoriesFile = "categories.json"
	hiddenFile     = "hidden_defaults.json"
)

var ErrInvalidUserID = errors.New("invalid user id")

type logRecord struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	LogDate   string  `json:"log_date"`
	TimeSlot  int     `json:"time_slot"`
	Score     int     `json:"score"`
	Category  string  `json:"category"`
	Notes     *string `json:"notes"`
	UpdatedAt string  `json:"updated_at"`
}

func newLogRecord(e models.LogEntry) logRecord {
	r := logRecord{
		ID:        e.ID,
		UserID:    e.UserID,
		LogDate:   e.Day(),
		TimeSlot:  e.TimeSlot,
		Score:     e.Score,
		Category:  e.Category,
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if e.Notes != "" {
		notes := e.Notes
		r.Notes = &notes
	}
	return r
}

func (r logRecord) entry(userID string) (models.LogEntry, error) {
	day, err := utils.ParseDate(r.LogDate)
	if err != nil {
		return models.LogEntry{}, err
	}
	e := models.LogEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		LogDate:   day,
		TimeSlot:  r.TimeSlot,
		Score:     r.Score,
		Category:  r.Category,
		UpdatedAt: parseTimestamp(r.UpdatedAt),
	}
	if e.UserID == "" {
		e.UserID = userID
	}
	if e.Category == "" {
		e.Category = constants.DefaultCategory
	}
	if r.Notes != nil {
		e.Notes = *r.Notes
	}
	return e, nil
}

// parseTimestamp accepts RFC 3339 and zone-less ISO timestamps. Unparseable
// values become the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// userData is one user's files as last read from or written to disk.
// Writers mutate a clone and swap it in only after the file is saved.
type userData struct {
	logs       []logRecord
	profile    profile
	categories []categoryRecord
	hidden     []string
}

func (u *userData) clone() *userData {
	return &userData{
		logs:       slices.Clone(u.logs),
		profile:    maps.Clone(u.profile),
		categories: slices.Clone(u.categories),
		hidden:     slices.Clone(u.hidden),
	}
}

// payload returns the value stored in the named file.
func (u *userData) payload(name string) interface{} {
	switch name {
	case logsFile:
		return nonNil(u.logs)
	case profileFile:
		return u.profile
	case categoriesFile:
		return nonNil(u.categories)
	default:
		return nonNil(u.hidden)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type Store struct {
	dir    string
	mu     sync.Mutex
	loaded bool
	users  map[string]*userData
}

var _ storage.Provider = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		users: make(map[string]*userData),
	}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Load() error {
	info, err := os.Stat(s.dir)
	if os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	if err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage path %s is not a directory", s.dir)
	}
	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*userData)
	s.loaded = false
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.dir
}

// validUserID rejects ids that would escape the data directory.
func validUserID(userID string) error {
	if userID == "" || userID == "." || userID == ".." ||
		strings.ContainsAny(userID, `/\`) || strings.HasPrefix(userID, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}
	return nil
}

func (s *Store) userDir(userID string) string {
	return filepath.Join(s.dir, userID)
}

// user returns the cached files for userID, reading them on first use.
// Callers hold s.mu.
func (s *Store) user(userID string) (*userData, error) {
	if !s.loaded {
		return nil, fmt.Errorf("storage not loaded")
	}
	if err := validUserID(userID); err != nil {
		return nil, err
	}
	if u, ok := s.users[userID]; ok {
		return u, nil
	}

	u := &userData{}
	targets := map[string]interface{}{
		logsFile:       &u.logs,
		profileFile:    &u.profile,
		categoriesFile: &u.categories,
		hiddenFile:     &u.hidden,
	}
	for name, target := range targets {
		if err := s.readFile(userID, name, target); err != nil {
			return nil, err
		}
	}
	s.users[userID] = u
	return u, nil
}

func (s *Store) readFile(userID, name string, v interface{}) error {
	path := filepath.Join(s.userDir(userID), name)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// commit writes one file from next and, only once it is on disk, makes next
// the cached state for userID. Callers hold s.mu.
func (s *Store) commit(userID string, next *userData, name string) error {
	if err := s.writeFile(userID, name, next.payload(name)); err != nil {
		return err
	}
	s.users[userID] = next
	return nil
}

// writeFile replaces the file through a temp file so a crash never leaves a
// torn file.
func (s *Store) writeFile(userID, name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) LogProductivity(entry models.LogEntry) (models.LogEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.LogEntry{}, err
	}
	entry.LogDate = utils.DateOf(entry.LogDate)
	if entry.Category == "" {
		entry.Category = constants.DefaultCategory
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now().UTC()
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(entry.UserID)
	if err != nil {
		return models.LogEntry{}, err
	}

	next := u.clone()
	i := slices.IndexFunc(next.logs, func(r logRecord) bool {
		return r.LogDate == entry.Day() && r.TimeSlot == entry.TimeSlot
	})
	if i >= 0 {
		entry.ID = next.logs[i].ID
		next.logs[i] = newLogRecord(entry)
	} else {
		next.logs = append(next.logs, newLogRecord(entry))
	}

	if err := s.commit(entry.UserID, next, logsFile); err != nil {
		return models.LogEntry{}, err
	}
	return entry, nil
}

func (s *Store) GetLogsByDate(userID string, date time.Time) ([]models.LogEntry, error) {
	return s.GetLogsByDateRange(userID, date, date)
}

func (s *Store) GetLogsByDateRange(userID string, start, end time.Time) ([]models.LogEntry, error) {
	start, end = utils.DateOf(start), utils.DateOf(end)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	logs := make([]models.LogEntry, 0)
	for _, r := range u.logs {
		e, err := r.entry(userID)
		if err != nil {
			logger.Warn("Skipping log with unreadable date", "user", userID, "id", r.ID, "log_date", r.LogDate)
			continue
		}
		if e.LogDate.Before(start) || e.LogDate.After(end) {
			continue
		}
		logs = append(logs, e)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].LogDate.Equal(logs[j].LogDate) {
			return logs[i].LogDate.Before(logs[j].LogDate)
		}
		return logs[i].TimeSlot < logs[j].TimeSlot
	})
	return logs, nil
}

func (s *Store) GetLogBySlot(userID string, date time.Time, slot int) (models.LogEntry, error) {
	logs, err := s.GetLogsByDate(userID, date)
	if err != nil {
		return models.LogEntry{}, err
	}
	for _, e := range logs {
		if e.TimeSlot == slot {
			return e, nil
		}
	}
	return models.LogEntry{}, fmt.Errorf("log for %s slot %d: %w", utils.FormatDate(date), slot, storage.ErrNotFound)
}

func (s *Store) DeleteLog(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(u.logs, func(r logRecord) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("log %s: %w", id, storage.ErrNotFound)
	}
	next := u.clone()
	next.logs = slices.Delete(next.logs, i, i+1)
	return s.commit(userID, next, logsFile)
}

func (s *Store) GetUserGoals(userID string) (models.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return models.Goals{}, err
	}
	return u.profile.goals()
}

func (s *Store) SaveUserGoals(userID string, goals models.Goals) error {
	if err := goals.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return err
	}
	next := u.clone()
	next.profile, err = next.profile.withGoals(userID, goals, time.Now().UTC())
	if err != nil {
		return err
	}
	return s.commit(userID, next, profileFile)
}
