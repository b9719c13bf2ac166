package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/dreamware/todolist/internal/storage"
)

// Messages returned in the "error" field of failed responses.
const (
	msgTitleRequired = "Title is required"
	msgInvalidBody   = "Invalid request body"
	msgNotFound      = "Todo not found"
	msgInternal      = "Internal server error"
	msgDeleted       = "Deleted"
)

// maxBodyBytes caps the size of a create request body.
const maxBodyBytes = 1 << 20

// ErrTitleRequired is returned when a create request carries no title
var ErrTitleRequired = errors.New("title is required")

// Server exposes a storage.Store over HTTP.
//
// The store is injected so each process (or test) owns its own
// collection. Server itself holds no mutable state and is safe for
// concurrent use once built.
type Server struct {
	store  storage.Store
	logger *slog.Logger
}

// NewServer creates a Server backed by store. A nil logger falls back
// to slog.Default().
func NewServer(store storage.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		logger: logger,
	}
}

// Handler returns the complete HTTP handler: routes wrapped in request
// id, access log and CORS middleware.
//
// Routes:
//
//	GET    /            - HTML page
//	GET    /health      - Liveness probe
//	GET    /todos       - List items
//	POST   /todos       - Create item
//	DELETE /todos/{id}  - Delete item
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /todos", s.handleList)
	mux.HandleFunc("POST /todos", s.handleCreate)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDelete)

	return withRequestID(s.withAccessLog(withCORS(mux)))
}

// createRequest is the accepted body of POST /todos.
type createRequest struct {
	Title string `json:"title"`
}

func (r createRequest) validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// deleteResponse is the body of a successful DELETE /todos/{id}.
type deleteResponse struct {
	Message string       `json:"message"`
	Todo    storage.Item `json:"todo"`
}

// handleList returns every item in insertion order.
//
// Endpoint: GET /todos
//
// Response:
//   - 200 OK: JSON array, [] when the list is empty
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.store.List())
}

// handleCreate validates the body and appends a new item.
//
// Endpoint: POST /todos
//
// Request body:
//
//	{"title": "Buy groceries"}
//
// Response:
//   - 201 Created: the new item
//   - 400 Bad Request: missing or empty title, or a body that is not a
//     JSON object with a string title
//
// An empty body, or a body sent without a JSON content type, counts as a
// missing title.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if isJSON(r.Header.Get("Content-Type")) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := decodeBody(r.Body, &req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, msgInvalidBody)
			return
		}
	}

	if err := req.validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, msgTitleRequired)
		return
	}

	item := s.store.Add(req.Title)
	s.writeJSON(w, r, http.StatusCreated, item)
}

// handleDelete removes one item by id.
//
// Endpoint: DELETE /todos/{id}
//
// Response:
//   - 200 OK: {"message": "Deleted", "todo": <item>}
//   - 404 Not Found: no item with that id
//
// An id that is not an integer cannot match any item and is reported as
// not found.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	item, err := s.store.Remove(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, msgNotFound)
			return
		}
		s.logger.Error("remove todo",
			"id", id,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		s.writeError(w, r, http.StatusInternalServerError, msgInternal)
		return
	}

	s.writeJSON(w, r, http.StatusOK, deleteResponse{Message: msgDeleted, Todo: item})
}

// isJSON reports whether a Content-Type header names a JSON body
// (application/json or any application/*+json type).
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" ||
		(strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// decodeBody reads exactly one JSON value into v. An empty body leaves v
// untouched; anything after the first value is an error.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
