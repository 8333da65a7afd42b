package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/utils"
	"github.com/julianstephens/slotscore/internal/validation"
)

// svcFor binds the request to ?user=, defaulting to the configured user.
// There is no authentication; the API is meant for localhost.
func (s *Server) svcFor(r *http.Request) *service.Service {
	return s.svc.ForUser(strings.TrimSpace(r.URL.Query().Get("user")))
}

func periodParam(w http.ResponseWriter, r *http.Request, def analytics.Period) (analytics.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return def, true
	}
	p, err := analytics.ParsePeriod(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return "", false
	}
	return p, true
}

// dateParam parses a YYYY-MM-DD query value. Missing values give the zero time.
func dateParam(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, key+": "+err.Error())
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": constants.Version,
		"storage": s.svc.Store().GetConfigPath(),
		"today":   utils.FormatDate(s.svc.Today()),
	})
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	date, ok := dateParam(w, r, "date")
	if !ok {
		return
	}
	if date.IsZero() {
		date = svc.Today()
	}
	view, err := svc.Day(date)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type logRequest struct {
	Date     string `json:"date"`
	Slot     *int   `json:"slot" validate:"required_without=Time"`
	Time     string `json:"time" validate:"omitempty,datetime=15:04"`
	Score    *int   `json:"score" validate:"required,gte=0,lte=4"`
	Category string `json:"category" validate:"max=64"`
	Notes    string `json:"notes" validate:"max=1000"`
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeErr(w, r, err)
		return
	}

	svc := s.svcFor(r)
	date := svc.Today()
	if req.Date != "" {
		d, err := utils.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		date = d
	}

	var slot int
	if req.Slot != nil {
		slot = *req.Slot
	} else {
		var err error
		if slot, err = utils.SlotFromTime(req.Time); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
	}

	res, err := svc.LogSlot(date, slot, *req.Score, req.Category, req.Notes)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.svcFor(r).DeleteLog(chi.URLParam(r, "id")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svcFor(r).Goals()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

type goalsRequest struct {
	Daily   *int `json:"daily" validate:"omitempty,gte=0"`
	Weekly  *int `json:"weekly" validate:"omitempty,gte=0"`
	Monthly *int `json:"monthly" validate:"omitempty,gte=0"`
}

func (s *Server) handlePutGoals(w http.ResponseWriter, r *http.Request) {
	var req goalsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeErr(w, r, err)
		return
	}
	goals, err := s.svcFor(r).UpdateGoals(req.Daily, req.Weekly, req.Monthly)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svcFor(r).Categories()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
	Icon string `json:"icon" validate:"max=16"`
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeErr(w, r, err)
		return
	}
	c, err := s.svcFor(r).AddCategory(req.Name, req.Icon)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svcFor(r).DeleteCategory(chi.URLParam(r, "name")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// periodHandler adapts a period-scoped service call into a handler.
func periodHandler[T any](s *Server, def analytics.Period, fn func(*service.Service, analytics.Period) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := periodParam(w, r, def)
		if !ok {
			return
		}
		out, err := fn(s.svcFor(r), period)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodAll, (*service.Service).Summary)(w, r)
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	streaks, err := s.svcFor(r).Streaks()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodWeek, (*service.Service).Compare)(w, r)
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodAll, (*service.Service).Patterns)(w, r)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodAll, (*service.Service).Heatmap)(w, r)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodAll, (*service.Service).Distribution)(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodWeek, (*service.Service).Report)(w, r)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodAll, (*service.Service).CategoryBreakdown)(w, r)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	periodHandler(s, analytics.PeriodMonth, (*service.Service).Trend)(w, r)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := s.svcFor(r).Recommendations(limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	start, ok := dateParam(w, r, "start")
	if !ok {
		return
	}
	end, ok := dateParam(w, r, "end")
	if !ok {
		return
	}
	cal, err := s.svcFor(r).Calendar(start, end)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handleGoalsProgress(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svcFor(r).GoalsProgress()
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
