package server

import (
	"net/http"
	"time"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/models"
)

// handleSubmissions handles /api/submissions — list and create.
func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		subs, err := s.app.SubmissionService.ListSubmissions(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})

	case http.MethodPost:
		var req struct {
			Insured       string `json:"insured"`
			Broker        string `json:"broker"`
			EffectiveDate string `json:"effective_date"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		sub := &models.Submission{
			Insured: req.Insured,
			Broker:  req.Broker,
		}
		if req.EffectiveDate != "" {
			d, err := time.Parse("2006-01-02", req.EffectiveDate)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "effective_date must be YYYY-MM-DD")
				return
			}
			sub.EffectiveDate = d
		}

		created, err := s.app.SubmissionService.CreateSubmission(r.Context(), sub)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleSubmission handles /api/submissions/{id} — get, update, delete.
func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		sub, err := s.app.SubmissionService.GetSubmission(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, sub)

	case http.MethodPut:
		var req struct {
			Insured       string `json:"insured"`
			Broker        string `json:"broker"`
			EffectiveDate string `json:"effective_date"`
			Status        string `json:"status"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		sub := &models.Submission{
			ID:      id,
			Insured: req.Insured,
			Broker:  req.Broker,
			Status:  models.SubmissionStatus(req.Status),
		}
		if req.EffectiveDate != "" {
			d, err := time.Parse("2006-01-02", req.EffectiveDate)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "effective_date must be YYYY-MM-DD")
				return
			}
			sub.EffectiveDate = d
		}

		updated, err := s.app.SubmissionService.UpdateSubmission(r.Context(), sub)
		if err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.SubmissionService.DeleteSubmission(r.Context(), id); err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleSubmissionOptions handles /api/submissions/{id}/options — list and create.
func (s *Server) handleSubmissionOptions(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		options, err := s.app.OptionService.ListOptions(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// Derived fields ride along so the UI never recomputes them.
		views := make([]map[string]interface{}, len(options))
		for i, o := range options {
			views[i] = s.optionView(o)
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"options": views})

	case http.MethodPost:
		option, err := s.app.OptionService.CreateOption(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, option)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleSubmissionDrift handles GET /api/submissions/{id}/drift.
func (s *Server) handleSubmissionDrift(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	report, err := s.app.DriftService.SubmissionDrift(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleSubmissionChart handles GET /api/submissions/{id}/chart — PNG tower
// comparison across the submission's options.
func (s *Server) handleSubmissionChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	options, err := s.app.OptionService.ListOptions(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	png, err := s.app.TowerService.RenderChart(options)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleSelectedOption handles /api/submissions/{id}/selected-option — the
// per-user persisted selection, scoped by the authenticated user.
func (s *Server) handleSelectedOption(w http.ResponseWriter, r *http.Request, id string) {
	userID := common.ResolveUserID(r.Context())
	key := "selected_option:" + id
	store := s.app.Storage.InternalStore()

	switch r.Method {
	case http.MethodGet:
		entry, err := store.GetUserKV(r.Context(), userID, key)
		if err != nil {
			WriteJSON(w, http.StatusOK, map[string]interface{}{"option_id": nil})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"option_id": entry.Value})

	case http.MethodPut:
		var req struct {
			OptionID string `json:"option_id"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.OptionID == "" {
			if err := store.DeleteUserKV(r.Context(), userID, key); err != nil {
				WriteError(w, http.StatusInternalServerError, err.Error())
				return
			}
			WriteJSON(w, http.StatusOK, map[string]interface{}{"option_id": nil})
			return
		}
		if _, err := s.app.OptionService.GetOption(r.Context(), req.OptionID); err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if err := store.SetUserKV(r.Context(), userID, key, req.OptionID); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"option_id": req.OptionID})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
