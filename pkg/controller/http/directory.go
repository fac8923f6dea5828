package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/domain/types"
	"github.com/duke-colab/bluebook/pkg/utils/errutil"
)

func (s *Server) handleDirectorySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("query parameter is required"), http.StatusBadRequest)
		return
	}

	result := s.directory.Search(r.Context(), query)
	s.respondDirectorySearch(w, r, result)
}

func (s *Server) handleSearchByNetID(w http.ResponseWriter, r *http.Request) {
	netid := chi.URLParam(r, "netid")
	result := s.directory.SearchByNetID(r.Context(), types.NetID(netid))
	s.respondDirectorySearch(w, r, result)
}

func (s *Server) handleSearchByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result := s.directory.SearchByName(r.Context(), name)
	s.respondDirectorySearch(w, r, result)
}

// respondDirectorySearch applies the search status contract: an error-tagged
// result with no hits is a server-side failure, an error alongside partial
// hits still serves the payload.
func (s *Server) respondDirectorySearch(w http.ResponseWriter, r *http.Request, result *model.DirectorySearchResult) {
	if result.Error != "" && len(result.Results) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New(result.Error), http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handlePersonDetails(w http.ResponseWriter, r *http.Request) {
	ldapkey := chi.URLParam(r, "ldapkey")

	result := s.directory.PersonDetails(r.Context(), types.LDAPKey(ldapkey))
	if result.Error != "" && result.Person == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New(result.Error), http.StatusNotFound)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
