package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/errutil"
)

// parseDateRangeParams reads the required start_date and end_date query
// parameters in YYYY-MM-DD form
func parseDateRangeParams(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, goerr.Wrap(err, "invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, goerr.Wrap(err, "invalid end_date, expected YYYY-MM-DD")
	}
	return start, end, nil
}

func (s *Server) handleSimplifiedEvents(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRangeParams(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.calendar.SimplifiedEvents(r.Context(), start, end)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleEventsByLocalIDs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LocalIDs []types.LocalID `json:"local_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	result, err := s.calendar.EventsByLocalIDs(r.Context(), req.LocalIDs)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleFiltersWithIDs(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRangeParams(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.calendar.FiltersWithIDs(r.Context(), start, end)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleReferenceGroups(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, referenceList(s.reference.Groups))
}

func (s *Server) handleReferenceCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, referenceList(s.reference.Categories))
}

// referenceList wraps a vocabulary list, mapping nil to an empty array so
// the payload always carries a "data" array
func referenceList(names []string) *model.ReferenceListResult {
	if names == nil {
		names = []string{}
	}
	return &model.ReferenceListResult{
		Data:  names,
		Count: len(names),
	}
}
