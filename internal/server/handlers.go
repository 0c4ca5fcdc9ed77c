package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/studiowebux/restadmin/internal/store"
	"github.com/studiowebux/restadmin/internal/types"
	"go.uber.org/zap"
)

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	names := s.store.Models()
	defs := make([]types.ModelDef, 0, len(names))
	for _, name := range names {
		def, err := s.store.Model(name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		defs = append(defs, def)
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: defs})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	records, err := s.store.List(r.Context(), model)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, err := s.store.Get(r.Context(), model, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	if _, err := s.store.Model(model); err != nil {
		s.writeError(w, err)
		return
	}

	rec, ok := decodeBody(w, r)
	if !ok {
		return
	}

	id, err := s.store.Create(r.Context(), model, rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{ID: id, Message: model + " created successfully"})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	if _, err := s.store.Model(model); err != nil {
		s.writeError(w, err)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rec, ok := decodeBody(w, r)
	if !ok {
		return
	}

	if err := s.store.Update(r.Context(), model, id, rec); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: model + " updated successfully"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	model := r.PathValue("model")
	if _, err := s.store.Model(model); err != nil {
		s.writeError(w, err)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), model, id); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: model + " deleted successfully"})
}

// writeError maps store errors to status codes
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnknownModel), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrNoFields):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Detail: err.Error()})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Invalid id " + strconv.Quote(r.PathValue("id"))})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request) (types.Record, bool) {
	defer r.Body.Close()

	decoded, err := types.DecodeJSON(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Invalid JSON body: " + err.Error()})
		return nil, false
	}

	rec, ok := decoded.(map[string]any)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "Request body must be a JSON object"})
		return nil, false
	}
	return types.Record(rec), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
