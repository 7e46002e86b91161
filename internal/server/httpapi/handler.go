package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"todoapi/internal/common"
	"todoapi/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// todoRequest is the body of create and update. Flag is a pointer so the
// update handler can tell an explicit 0 from an absent field.
type todoRequest struct {
	Flag   *int   `json:"flag"`
	Plan   string `json:"plan"`
	Result string `json:"result"`
}

type createResponse struct {
	ID           int64 `json:"id"`
	RowsAffected int64 `json:"rows_affected"`
}

type execResponse struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rows_affected"`
}

// handleRoot is the unauthenticated liveness probe.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK. I am ToDo App (^_^)/"))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			// No hint about which field was wrong.
			writeMessage(w, http.StatusUnauthorized, "wrong username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleListOpen(w http.ResponseWriter, r *http.Request) {
	items, err := s.todos.ListOpen(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListComplete(w http.ResponseWriter, r *http.Request) {
	items, err := s.todos.ListComplete(r.Context())
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	item, err := s.todos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no record found for id")
			return
		}
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flag := 0
	if req.Flag != nil {
		flag = *req.Flag
	}

	created, err := s.todos.Create(r.Context(), &models.Todo{
		Flag:   flag,
		Plan:   req.Plan,
		Result: req.Result,
	})
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createResponse{ID: created.ID, RowsAffected: 1})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Flag == nil {
		writeMessage(w, http.StatusBadRequest, "id or flag for the update is missing")
		return
	}

	affected, err := s.todos.Update(r.Context(), &models.Todo{
		ID:     id,
		Flag:   *req.Flag,
		Plan:   req.Plan,
		Result: req.Result,
	})
	if err != nil {
		s.logger.Error(r.Context(), "update failed", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, execResponse{
		Message:      fmt.Sprintf("updated id %d", id),
		RowsAffected: affected,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	// Deleting an id that no longer exists is a success with zero rows.
	affected, err := s.todos.Delete(r.Context(), id)
	if err != nil {
		s.logger.Error(r.Context(), "delete failed", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, execResponse{
		Message:      fmt.Sprintf("deleted id %d", id),
		RowsAffected: affected,
	})
}

// pathID parses the {id} path segment, answering 400 itself when the
// segment is missing or not an integer.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := r.PathValue("id")
	if idParam == "" {
		writeMessage(w, http.StatusBadRequest, "id is required")
		return 0, false
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// storeError reports a store failure as a generic 500. Driver detail stays
// in the log, never in the response.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "store operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "database error")
}
