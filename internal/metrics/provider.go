package metrics

import (
	"time"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
)

// InstrumentedProvider times every data call on the wrapped provider.
type InstrumentedProvider struct {
	storage.Provider
	m *Metrics
}

var _ storage.Provider = (*InstrumentedProvider)(nil)

func Instrument(p storage.Provider, m *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{Provider: p, m: m}
}

func (p *InstrumentedProvider) observe(op string, start time.Time, err error) {
	p.m.RecordStorageOp(op, time.Since(start), err)
}

func (p *InstrumentedProvider) LogProductivity(entry models.LogEntry) (models.LogEntry, error) {
	start := time.Now()
	saved, err := p.Provider.LogProductivity(entry)
	p.observe("log_productivity", start, err)
	if err == nil {
		p.m.SlotsLogged.Inc()
	}
	return saved, err
}

func (p *InstrumentedProvider) GetLogsByDate(userID string, date time.Time) ([]models.LogEntry, error) {
	start := time.Now()
	logs, err := p.Provider.GetLogsByDate(userID, date)
	p.observe("get_logs_by_date", start, err)
	return logs, err
}

func (p *InstrumentedProvider) GetLogsByDateRange(userID string, from, to time.Time) ([]models.LogEntry, error) {
	start := time.Now()
	logs, err := p.Provider.GetLogsByDateRange(userID, from, to)
	p.observe("get_logs_by_date_range", start, err)
	return logs, err
}

func (p *InstrumentedProvider) GetLogBySlot(userID string, date time.Time, slot int) (models.LogEntry, error) {
	start := time.Now()
	entry, err := p.Provider.GetLogBySlot(userID, date, slot)
	p.observe("get_log_by_slot", start, err)
	return entry, err
}

func (p *InstrumentedProvider) DeleteLog(userID, id string) error {
	start := time.Now()
	err := p.Provider.DeleteLog(userID, id)
	p.observe("delete_log", start, err)
	return err
}

func (p *InstrumentedProvider) GetUserGoals(userID string) (models.Goals, error) {
	start := time.Now()
	goals, err := p.Provider.GetUserGoals(userID)
	p.observe("get_user_goals", start, err)
	return goals, err
}

func (p *InstrumentedProvider) SaveUserGoals(userID string, goals models.Goals) error {
	start := time.Now()
	err := p.Provider.SaveUserGoals(userID, goals)
	p.observe("save_user_goals", start, err)
	return err
}

func (p *InstrumentedProvider) GetCategories(userID string) ([]models.Category, error) {
	start := time.Now()
	cats, err := p.Provider.GetCategories(userID)
	p.observe("get_categories", start, err)
	return cats, err
}

func (p *InstrumentedProvider) AddCategory(userID string, category models.Category) error {
	start := time.Now()
	err := p.Provider.AddCategory(userID, category)
	p.observe("add_category", start, err)
	return err
}

func (p *InstrumentedProvider) DeleteCategory(userID, name string) error {
	start := time.Now()
	err := p.Provider.DeleteCategory(userID, name)
	p.observe("delete_category", start, err)
	return err
}
