package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/cmai/strata/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)
	mux.HandleFunc("/api/users", s.handleUserCreate)

	// Submissions and their nested collections
	mux.HandleFunc("/api/submissions/", s.routeSubmissions)
	mux.HandleFunc("/api/submissions", s.handleSubmissions)

	// Quote options
	mux.HandleFunc("/api/options/", s.routeOptions)

	// Endorsements and subjectivities
	mux.HandleFunc("/api/endorsements/", s.routeEndorsements)
	mux.HandleFunc("/api/subjectivities/", s.routeSubjectivities)
}

// routeSubmissions dispatches /api/submissions/{id}/* to the appropriate handler.
func (s *Server) routeSubmissions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/submissions/")
	if path == "" {
		s.handleSubmissions(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleSubmission(w, r, id)
	case "options":
		s.handleSubmissionOptions(w, r, id)
	case "drift":
		s.handleSubmissionDrift(w, r, id)
	case "chart":
		s.handleSubmissionChart(w, r, id)
	case "endorsements":
		s.handleSubmissionEndorsements(w, r, id)
	case "subjectivities":
		s.handleSubmissionSubjectivities(w, r, id)
	case "selected-option":
		s.handleSelectedOption(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeOptions dispatches /api/options/{id}/* to the appropriate handler.
func (s *Server) routeOptions(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/options/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "option id is required in path")
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handleOption(w, r, id)
	case "clone":
		s.handleOptionClone(w, r, id)
	case "bind":
		s.handleOptionBind(w, r, id)
	case "align":
		s.handleOptionAlign(w, r, id)
	case "tower":
		s.handleOptionTower(w, r, id)
	case "name":
		s.handleOptionName(w, r, id)
	case "retro":
		s.handleOptionRetro(w, r, id)
	case "commission":
		s.handleOptionCommission(w, r, id)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeEndorsements dispatches /api/endorsements/{id}[/options].
func (s *Server) routeEndorsements(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/endorsements/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "endorsement id is required in path")
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if len(parts) == 2 && parts[1] == "options" {
		s.handleEndorsementOptions(w, r, id)
		return
	}
	if len(parts) == 1 {
		s.handleEndorsement(w, r, id)
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// routeSubjectivities dispatches /api/subjectivities/{id}[/options].
func (s *Server) routeSubjectivities(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/subjectivities/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "subjectivity id is required in path")
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if len(parts) == 2 && parts[1] == "options" {
		s.handleSubjectivityOptions(w, r, id)
		return
	}
	if len(parts) == 1 {
		s.handleSubjectivity(w, r, id)
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":    s.app.Config.Environment,
		"carrier_name":   s.app.Config.Carrier.Name,
		"carrier_marker": s.app.Config.Carrier.Marker,
		"internal_path":  s.app.Config.Storage.Internal.Path,
		"data_path":      s.app.Config.Storage.Data.Path,
		"logging_level":  s.app.Config.Logging.Level,
		"uptime":         time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
