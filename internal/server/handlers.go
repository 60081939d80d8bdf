package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"notesum/internal/api"
	"notesum/internal/logging"
	"notesum/internal/services"
	"notesum/internal/summarizer"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status api.Status
	if s.deps.Status != nil {
		status = s.deps.Status(r.Context())
	}
	status.Running = true
	status.PID = os.Getpid()
	if s.deps.Summarizer != nil {
		state := s.deps.Summarizer.State()
		status.Busy = s.deps.Summarizer.Busy()
		status.LastState = string(state.Status)
		status.LastError = state.Message
	}
	if status.Dependencies == nil {
		status.Dependencies = []api.DependencyStatus{}
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pinned, _ := strconv.ParseBool(query.Get("pinned"))
	list, err := s.deps.Summaries.List(r.Context(), api.ListOptions{
		Query:      query.Get("q"),
		Tag:        strings.TrimSpace(query.Get("tag")),
		PinnedOnly: pinned,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.deps.Summaries.Tags(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.TagsResponse{Tags: tags})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.summaryID(w, r)
	if !ok {
		return
	}
	dto, err := s.deps.Summaries.Describe(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if dto == nil {
		s.writeError(w, http.StatusNotFound, "summary not found")
		return
	}
	s.writeJSON(w, http.StatusOK, api.SummaryResponse{Summary: *dto})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.summaryID(w, r)
	if !ok {
		return
	}
	var body api.UpdateRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	if body.SummarizedText == nil && body.Tags == nil {
		s.writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	var (
		dto *api.Summary
		err error
	)
	if body.SummarizedText != nil {
		if dto, err = s.deps.Summaries.Edit(r.Context(), id, *body.SummarizedText); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}
	if body.Tags != nil {
		if dto, err = s.deps.Summaries.SetTags(r.Context(), id, *body.Tags); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, api.SummaryResponse{Summary: *dto})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.summaryID(w, r)
	if !ok {
		return
	}
	if err := s.deps.Summaries.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePin(w http.ResponseWriter, r *http.Request) {
	id, ok := s.summaryID(w, r)
	if !ok {
		return
	}
	dto, err := s.deps.Summaries.TogglePin(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.PinResponse{ID: dto.ID, Pinned: dto.Pinned})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.deps.Summarizer == nil {
		s.writeError(w, http.StatusServiceUnavailable, "summarizer unavailable")
		return
	}
	var body api.SummarizeRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	record, err := s.deps.Summarizer.Summarize(r.Context(), summarizer.Request{
		Text:   body.Text,
		Length: body.Length,
		Tags:   body.Tags,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.SummaryResponse{Summary: api.FromSummary(record)})
}

func (s *Server) summaryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid summary id")
		return 0, false
	}
	return id, true
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

// writeServiceError maps err onto a status code. Summarization failures carry
// a user-facing message alongside the technical error.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	resp := api.ErrorResponse{Error: err.Error()}
	var failure *summarizer.Failure
	if errors.As(err, &failure) {
		// A failed model call is always an upstream failure, whatever caused it.
		status = http.StatusBadGateway
		resp.Message = failure.Message
	}
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.logger).Warn("request failed",
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Error(err),
		)
	}
	s.writeJSON(w, status, resp)
}
