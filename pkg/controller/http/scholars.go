package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/usecase"
	"github.com/duke-colab/bluebook/pkg/utils/errutil"
)

// maxScholarCount caps the publications and grants page size
const maxScholarCount = 100

// parseCountParam reads the optional count query parameter, bounded to
// 1..100 with the resolver default when absent
func parseCountParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return usecase.DefaultScholarCount, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid count, expected an integer")
	}
	if count < 1 || count > maxScholarCount {
		return 0, goerr.New("count out of range",
			goerr.V("count", count), goerr.V("max", maxScholarCount))
	}
	return count, nil
}

func (s *Server) handleScholarPublications(w http.ResponseWriter, r *http.Request) {
	duidOrQuery := r.URL.Query().Get("duid_or_query")
	if duidOrQuery == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("duid_or_query parameter is required"), http.StatusBadRequest)
		return
	}
	count, err := parseCountParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result := s.scholars.Publications(r.Context(), duidOrQuery, count)
	if result.Error != "" && len(result.Publications) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New(result.Error), http.StatusNotFound)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleScholarGrants(w http.ResponseWriter, r *http.Request) {
	duidOrQuery := r.URL.Query().Get("duid_or_query")
	if duidOrQuery == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("duid_or_query parameter is required"), http.StatusBadRequest)
		return
	}
	count, err := parseCountParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result := s.scholars.Grants(r.Context(), duidOrQuery, count)
	if result.Error != "" && len(result.Grants) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New(result.Error), http.StatusNotFound)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleScholarDetails(w http.ResponseWriter, r *http.Request) {
	duidOrQuery := r.URL.Query().Get("duid_or_query")
	if duidOrQuery == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("duid_or_query parameter is required"), http.StatusBadRequest)
		return
	}

	result := s.scholars.Details(r.Context(), duidOrQuery)
	if result.Error != "" && result.Scholar == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New(result.Error), http.StatusNotFound)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
