package book

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"bookservice/internal/httpx"
)

type HTTPHandler struct {
	service BookService
	logger  *slog.Logger
}

func NewHTTPHandler(service BookService, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HTTPHandler{service: service, logger: logger}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /book", h.AddBook)
	mux.HandleFunc("GET /book/{isbn}", h.FindBook)
	mux.HandleFunc("DELETE /book/{isbn}", h.RemoveBook)
	mux.HandleFunc("PUT /book/{isbn}/title/{title}", h.UpdateTitle)
	mux.HandleFunc("GET /books/author/{author}", h.FindBooksByAuthor)
	mux.HandleFunc("GET /books/publisher/{publisher}", h.FindBooksByPublisher)
	mux.HandleFunc("GET /authors/book/{isbn}", h.FindBookAuthors)
	mux.HandleFunc("GET /publishers/author/{author}", h.FindPublishersByAuthor)
	mux.HandleFunc("DELETE /author/{author}", h.RemoveAuthor)
}

func (h *HTTPHandler) isbnParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	isbn, err := strconv.ParseInt(r.PathValue("isbn"), 10, 64)
	if err != nil || isbn <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ISBN must be a positive integer", nil)
		return 0, false
	}
	return isbn, true
}

func (h *HTTPHandler) nameParam(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	name := strings.TrimSpace(r.PathValue(key))
	if name == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", key+" is required", nil)
		return "", false
	}
	return name, true
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Entity not found", nil)
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed",
		"op", op,
		"error", err.Error(),
		"request_id", httpx.RequestIDFrom(r),
	)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// AddBook handles POST /book
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var dto BookDto
	if err := httpx.DecodeJSON(r, &dto); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	dto = dto.normalized()
	if details := httpx.ValidateStruct(dto); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	added, err := h.service.AddBook(r.Context(), dto)
	if err != nil {
		h.fail(w, r, "add book", err)
		return
	}
	httpx.JSONSuccess(w, r, added, nil)
}

// FindBook handles GET /book/{isbn}
func (h *HTTPHandler) FindBook(w http.ResponseWriter, r *http.Request) {
	isbn, ok := h.isbnParam(w, r)
	if !ok {
		return
	}
	dto, err := h.service.FindBookByISBN(r.Context(), isbn)
	if err != nil {
		h.fail(w, r, "find book", err)
		return
	}
	httpx.JSONSuccess(w, r, dto, nil)
}

// RemoveBook handles DELETE /book/{isbn}
func (h *HTTPHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	isbn, ok := h.isbnParam(w, r)
	if !ok {
		return
	}
	dto, err := h.service.RemoveBook(r.Context(), isbn)
	if err != nil {
		h.fail(w, r, "remove book", err)
		return
	}
	httpx.JSONSuccess(w, r, dto, nil)
}

// UpdateTitle handles PUT /book/{isbn}/title/{title}
func (h *HTTPHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	isbn, ok := h.isbnParam(w, r)
	if !ok {
		return
	}
	title, ok := h.nameParam(w, r, "title")
	if !ok {
		return
	}
	dto, err := h.service.UpdateBook(r.Context(), isbn, title)
	if err != nil {
		h.fail(w, r, "update book", err)
		return
	}
	httpx.JSONSuccess(w, r, dto, nil)
}

// FindBooksByAuthor handles GET /books/author/{author}
func (h *HTTPHandler) FindBooksByAuthor(w http.ResponseWriter, r *http.Request) {
	author, ok := h.nameParam(w, r, "author")
	if !ok {
		return
	}
	books, err := h.service.FindBooksByAuthor(r.Context(), author)
	if err != nil {
		h.fail(w, r, "find books by author", err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// FindBooksByPublisher handles GET /books/publisher/{publisher}
func (h *HTTPHandler) FindBooksByPublisher(w http.ResponseWriter, r *http.Request) {
	publisher, ok := h.nameParam(w, r, "publisher")
	if !ok {
		return
	}
	books, err := h.service.FindBooksByPublisher(r.Context(), publisher)
	if err != nil {
		h.fail(w, r, "find books by publisher", err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// FindBookAuthors handles GET /authors/book/{isbn}
func (h *HTTPHandler) FindBookAuthors(w http.ResponseWriter, r *http.Request) {
	isbn, ok := h.isbnParam(w, r)
	if !ok {
		return
	}
	authors, err := h.service.FindBookAuthors(r.Context(), isbn)
	if err != nil {
		h.fail(w, r, "find book authors", err)
		return
	}
	httpx.JSONSuccess(w, r, authors, nil)
}

// FindPublishersByAuthor handles GET /publishers/author/{author}
func (h *HTTPHandler) FindPublishersByAuthor(w http.ResponseWriter, r *http.Request) {
	author, ok := h.nameParam(w, r, "author")
	if !ok {
		return
	}
	names, err := h.service.FindPublishersByAuthor(r.Context(), author)
	if err != nil {
		h.fail(w, r, "find publishers by author", err)
		return
	}
	httpx.JSONSuccess(w, r, names, nil)
}

// RemoveAuthor handles DELETE /author/{author}
func (h *HTTPHandler) RemoveAuthor(w http.ResponseWriter, r *http.Request) {
	author, ok := h.nameParam(w, r, "author")
	if !ok {
		return
	}
	dto, err := h.service.RemoveAuthor(r.Context(), author)
	if err != nil {
		h.fail(w, r, "remove author", err)
		return
	}
	httpx.JSONSuccess(w, r, dto, nil)
}
