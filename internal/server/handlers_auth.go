package server

import (
	"net/http"
	"strings"

	"github.com/cmai/strata/internal/common"
)

// handleAuthLogin handles POST /api/auth/login — exchange credentials for a JWT.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, user, err := s.app.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": int(s.app.AuthService.TokenExpiry().Seconds()),
		"user": map[string]string{
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
	})
}

// handleAuthValidate handles GET/POST /api/auth/validate — validate a JWT.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		WriteError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := s.app.AuthService.ValidateToken(tokenString)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]string{
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		},
	})
}

// handleUserCreate handles POST /api/users — admin-only account creation.
func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	uc := common.UserContextFromContext(r.Context())
	if uc == nil || uc.Role != "admin" {
		WriteError(w, http.StatusForbidden, "admin role required")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.AuthService.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})
}
