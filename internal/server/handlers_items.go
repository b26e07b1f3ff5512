package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cmai/strata/internal/models"
)

// validateItemLinks checks that every quote id belongs to the submission's
// option set. Items may not link across submissions.
func (s *Server) validateItemLinks(r *http.Request, submissionID string, quoteIDs models.QuoteIDList) error {
	options, err := s.app.OptionService.ListOptions(r.Context(), submissionID)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(options))
	for _, o := range options {
		known[o.ID] = true
	}
	for _, id := range quoteIDs {
		if !known[id] {
			return fmt.Errorf("quote option '%s' does not belong to submission '%s'", id, submissionID)
		}
	}
	return nil
}

// handleSubmissionEndorsements handles /api/submissions/{id}/endorsements —
// list and create.
func (s *Server) handleSubmissionEndorsements(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.Storage.Endorsements().ListEndorsements(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"endorsements": items})

	case http.MethodPost:
		var req struct {
			Code     string             `json:"code"`
			Title    string             `json:"title"`
			Category string             `json:"category"`
			QuoteIDs models.QuoteIDList `json:"quote_ids"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Title == "" {
			WriteError(w, http.StatusBadRequest, "title is required")
			return
		}
		if len(req.QuoteIDs) == 0 {
			WriteError(w, http.StatusBadRequest, "at least one quote option link is required")
			return
		}

		category := models.EndorsementCategory(req.Category)
		if category == "" {
			category = models.EndorsementOther
		}
		if !models.ValidEndorsementCategories[category] {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid endorsement category '%s'", req.Category))
			return
		}

		if _, err := s.app.SubmissionService.GetSubmission(r.Context(), id); err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if err := s.validateItemLinks(r, id, req.QuoteIDs); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		e := &models.Endorsement{
			ID:           uuid.New().String(),
			SubmissionID: id,
			Code:         req.Code,
			Title:        req.Title,
			Category:     category,
			QuoteIDs:     req.QuoteIDs,
		}
		if err := s.app.Storage.Endorsements().SaveEndorsement(r.Context(), e); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, e)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleEndorsement handles /api/endorsements/{id} — get, update metadata,
// delete. Link changes go through the /options subresource.
func (s *Server) handleEndorsement(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		e, err := s.app.Storage.Endorsements().GetEndorsement(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, e)

	case http.MethodPut:
		e, err := s.app.Storage.Endorsements().GetEndorsement(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}

		var req struct {
			Code     *string `json:"code"`
			Title    *string `json:"title"`
			Category *string `json:"category"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		if req.Code != nil {
			e.Code = *req.Code
		}
		if req.Title != nil {
			if *req.Title == "" {
				WriteError(w, http.StatusBadRequest, "title cannot be empty")
				return
			}
			e.Title = *req.Title
		}
		if req.Category != nil {
			category := models.EndorsementCategory(*req.Category)
			if !models.ValidEndorsementCategories[category] {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid endorsement category '%s'", *req.Category))
				return
			}
			e.Category = category
		}

		if err := s.app.Storage.Endorsements().SaveEndorsement(r.Context(), e); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, e)

	case http.MethodDelete:
		if err := s.app.Storage.Endorsements().DeleteEndorsement(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleEndorsementOptions handles PUT /api/endorsements/{id}/options —
// replace the link set. An empty set deletes the endorsement.
func (s *Server) handleEndorsementOptions(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		QuoteIDs models.QuoteIDList `json:"quote_ids"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	e, err := s.app.DriftService.ApplyEndorsementSelection(r.Context(), id, req.QuoteIDs)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	WriteJSON(w, http.StatusOK, e)
}

// handleSubmissionSubjectivities handles /api/submissions/{id}/subjectivities
// — list and create.
func (s *Server) handleSubmissionSubjectivities(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.Storage.Subjectivities().ListSubjectivities(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"subjectivities": items})

	case http.MethodPost:
		var req struct {
			Text     string             `json:"text"`
			Status   string             `json:"status"`
			QuoteIDs models.QuoteIDList `json:"quote_ids"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Text == "" {
			WriteError(w, http.StatusBadRequest, "text is required")
			return
		}
		if len(req.QuoteIDs) == 0 {
			WriteError(w, http.StatusBadRequest, "at least one quote option link is required")
			return
		}

		status := models.SubjectivityStatus(req.Status)
		if status == "" {
			status = models.SubjectivityPending
		}
		if !models.ValidSubjectivityStatuses[status] {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid subjectivity status '%s'", req.Status))
			return
		}

		if _, err := s.app.SubmissionService.GetSubmission(r.Context(), id); err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if err := s.validateItemLinks(r, id, req.QuoteIDs); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		sub := &models.Subjectivity{
			ID:           uuid.New().String(),
			SubmissionID: id,
			Text:         req.Text,
			Status:       status,
			QuoteIDs:     req.QuoteIDs,
		}
		if err := s.app.Storage.Subjectivities().SaveSubjectivity(r.Context(), sub); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, sub)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleSubjectivity handles /api/subjectivities/{id} — get, update metadata
// and status, delete.
func (s *Server) handleSubjectivity(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		sub, err := s.app.Storage.Subjectivities().GetSubjectivity(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, sub)

	case http.MethodPut:
		sub, err := s.app.Storage.Subjectivities().GetSubjectivity(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}

		var req struct {
			Text   *string `json:"text"`
			Status *string `json:"status"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		if req.Text != nil {
			if *req.Text == "" {
				WriteError(w, http.StatusBadRequest, "text cannot be empty")
				return
			}
			sub.Text = *req.Text
		}
		if req.Status != nil {
			status := models.SubjectivityStatus(*req.Status)
			if !models.ValidSubjectivityStatuses[status] {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid subjectivity status '%s'", *req.Status))
				return
			}
			sub.Status = status
		}

		if err := s.app.Storage.Subjectivities().SaveSubjectivity(r.Context(), sub); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, sub)

	case http.MethodDelete:
		if err := s.app.Storage.Subjectivities().DeleteSubjectivity(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleSubjectivityOptions handles PUT /api/subjectivities/{id}/options —
// replace the link set. An empty set deletes the subjectivity.
func (s *Server) handleSubjectivityOptions(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		QuoteIDs models.QuoteIDList `json:"quote_ids"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	sub, err := s.app.DriftService.ApplySubjectivitySelection(r.Context(), id, req.QuoteIDs)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sub == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		return
	}
	WriteJSON(w, http.StatusOK, sub)
}
