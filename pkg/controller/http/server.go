package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/duke-colab/bluebook/pkg/domain/model"
	"github.com/duke-colab/bluebook/pkg/usecase"
	"github.com/duke-colab/bluebook/pkg/utils/logging"
)

// Server is the REST boundary over the calendar, directory and scholars
// resolvers. Route groups are mounted only for the resolvers that were
// actually wired in, so a partially configured server still answers its
// health check.
type Server struct {
	router    *chi.Mux
	calendar  *usecase.CalendarUseCase
	directory *usecase.DirectoryUseCase
	scholars  *usecase.ScholarsUseCase
	reference *model.ReferenceData
	version   string
}

type Options func(*Server)

func WithCalendar(uc *usecase.CalendarUseCase) Options {
	return func(s *Server) {
		s.calendar = uc
	}
}

func WithDirectory(uc *usecase.DirectoryUseCase) Options {
	return func(s *Server) {
		s.directory = uc
	}
}

func WithScholars(uc *usecase.ScholarsUseCase) Options {
	return func(s *Server) {
		s.scholars = uc
	}
}

func WithReference(data *model.ReferenceData) Options {
	return func(s *Server) {
		s.reference = data
	}
}

func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:  r,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	// The upstream consumers are browser-hosted tool UIs, so CORS stays open
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/calendar", func(r chi.Router) {
			if s.calendar != nil {
				r.Get("/simplified-events", s.handleSimplifiedEvents)
				r.Post("/events-by-local-ids", s.handleEventsByLocalIDs)
				r.Get("/filters-with-ids", s.handleFiltersWithIDs)
			}
			if s.reference != nil {
				r.Get("/reference/groups", s.handleReferenceGroups)
				r.Get("/reference/categories", s.handleReferenceCategories)
			}
		})

		if s.directory != nil {
			r.Route("/directory", func(r chi.Router) {
				r.Get("/search", s.handleDirectorySearch)
				r.Get("/person/{ldapkey}", s.handlePersonDetails)
				r.Get("/netid/{netid}", s.handleSearchByNetID)
				r.Get("/name/{name}", s.handleSearchByName)
			})
		}

		if s.scholars != nil {
			r.Route("/scholars", func(r chi.Router) {
				r.Get("/publications", s.handleScholarPublications)
				r.Get("/grants", s.handleScholarGrants)
				r.Get("/details", s.handleScholarDetails)
			})
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "bluebook",
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"service": "bluebook",
		"version": s.version,
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
