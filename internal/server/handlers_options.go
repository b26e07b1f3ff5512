package server

import (
	"net/http"

	"github.com/cmai/strata/internal/models"
)

// optionView decorates an option with its derived name and position.
func (s *Server) optionView(o *models.QuoteOption) map[string]interface{} {
	return map[string]interface{}{
		"option":   o,
		"name":     s.app.TowerService.DisplayName(o),
		"position": s.app.TowerService.StructurePosition(o),
	}
}

// handleOption handles /api/options/{id} — get and delete.
func (s *Server) handleOption(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		option, err := s.app.OptionService.GetOption(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, s.optionView(option))

	case http.MethodDelete:
		if err := s.app.OptionService.DeleteOption(r.Context(), id); err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleOptionClone handles POST /api/options/{id}/clone.
func (s *Server) handleOptionClone(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	clone, err := s.app.OptionService.CloneOption(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, s.optionView(clone))
}

// handleOptionBind handles POST /api/options/{id}/bind.
func (s *Server) handleOptionBind(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	option, err := s.app.OptionService.BindOption(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusConflict, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, s.optionView(option))
}

// handleOptionAlign handles POST /api/options/{id}/align — link every
// endorsement and subjectivity the option is missing relative to its peers.
func (s *Server) handleOptionAlign(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	report, err := s.app.DriftService.AlignOption(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleOptionTower handles PUT /api/options/{id}/tower — replace the tower
// structure. Attachments are recomputed server-side regardless of what the
// client sent.
func (s *Server) handleOptionTower(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Tower models.Tower `json:"tower"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	option, err := s.app.OptionService.UpdateTower(r.Context(), id, req.Tower)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, s.optionView(option))
}

// handleOptionName handles PUT /api/options/{id}/name — set or clear the
// user-assigned name override. An empty name reverts to the derived name.
func (s *Server) handleOptionName(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	option, err := s.app.OptionService.RenameOption(r.Context(), id, req.Name)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, s.optionView(option))
}

// handleOptionRetro handles PUT /api/options/{id}/retro.
func (s *Server) handleOptionRetro(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		Entries []models.RetroScheduleEntry `json:"entries"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	option, err := s.app.OptionService.SetRetroSchedule(r.Context(), id, req.Entries)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, s.optionView(option))
}

// handleOptionCommission handles PUT /api/options/{id}/commission.
func (s *Server) handleOptionCommission(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	var req struct {
		CommissionPct float64 `json:"commission_pct"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	option, err := s.app.OptionService.SetCommission(r.Context(), id, req.CommissionPct)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, s.optionView(option))
}
