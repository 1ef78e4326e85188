package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/shelf/internal/config"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

type errorBody struct {
	Detail string `json:"detail"`
}

type healthBody struct {
	Status string `json:"status"`
	Debug  bool   `json:"debug"`
	DB     string `json:"db"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	db := "ok"
	if err := s.library.Ping(r.Context()); err != nil {
		s.log.Error(err, "health check ping failed")
		db = "error"
	}
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Debug: s.debug, DB: db})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.library.ListBooks(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "book_id")
	if !ok {
		return
	}
	book, err := s.library.GetBook(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var in domain.NewBook
	if !s.decode(w, r, &in) {
		return
	}
	book, err := s.library.CreateBook(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "book_id")
	if !ok {
		return
	}
	var patch domain.BookPatch
	if !s.decode(w, r, &patch) {
		return
	}
	book, err := s.library.UpdateBook(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "book_id")
	if !ok {
		return
	}
	if err := s.library.DeleteBook(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.library.ListAuthors(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "author_id")
	if !ok {
		return
	}
	author, err := s.library.GetAuthor(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in domain.NewAuthor
	if !s.decode(w, r, &in) {
		return
	}
	author, err := s.library.CreateAuthor(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "author_id")
	if !ok {
		return
	}
	var patch domain.AuthorPatch
	if !s.decode(w, r, &patch) {
		return
	}
	author, err := s.library.UpdateAuthor(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "author_id")
	if !ok {
		return
	}
	if err := s.library.DeleteAuthor(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request, param string) (domain.ID, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: fmt.Sprintf("%s must be an integer", param)})
		return 0, false
	}
	return domain.ID(id), true
}

// decode reads a JSON body into dst and runs its validate tags. Failures are
// answered with 422.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "Request body must be valid JSON."})
		return false
	}
	if err := config.GetValidator().Struct(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: describeValidation(err)})
		return false
	}
	return true
}

func describeValidation(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s: field required", field))
		case "min":
			parts = append(parts, fmt.Sprintf("%s: must be at least %s character(s)", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s: must be at most %s characters", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		notFound   *shelferrors.NotFoundError
		conflict   *shelferrors.ConflictError
		validation *shelferrors.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: notFound.Error()})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorBody{Detail: conflict.Error()})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: validation.Message})
	default:
		s.log.Error(err, "request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "Internal Server Error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
