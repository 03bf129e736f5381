package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(h *HTTPHandler) *http.ServeMux {
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestHTTPHandler_AddBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := NewMockBookService(ctrl)
	mux := newTestMux(NewHTTPHandler(mockService, nil))

	const body = `{"isbn":111,"title":"Go","publisher":"Acme","authors":[{"name":"Alice","birthDate":"1980-01-01"}]}`

	t.Run("added", func(t *testing.T) {
		mockService.EXPECT().AddBook(gomock.Any(), goBook()).Return(true, nil)

		w := serve(mux, http.MethodPost, "/book", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":true}`, w.Body.String())
	})

	t.Run("already exists", func(t *testing.T) {
		mockService.EXPECT().AddBook(gomock.Any(), goBook()).Return(false, nil)

		w := serve(mux, http.MethodPost, "/book", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":false}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := serve(mux, http.MethodPost, "/book", `{"isbn":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})

	t.Run("validation failure", func(t *testing.T) {
		w := serve(mux, http.MethodPost, "/book", `{"isbn":0,"title":"","publisher":"Acme","authors":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		assert.Contains(t, w.Body.String(), `"field":"isbn"`)
		assert.Contains(t, w.Body.String(), `"field":"title"`)
		assert.Contains(t, w.Body.String(), `"field":"authors"`)
	})

	t.Run("nested author validation", func(t *testing.T) {
		w := serve(mux, http.MethodPost, "/book", `{"isbn":1,"title":"T","publisher":"P","authors":[{"name":""}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"authors[0].name"`)
	})

	t.Run("blank names fail validation", func(t *testing.T) {
		w := serve(mux, http.MethodPost, "/book", `{"isbn":1,"title":"   ","publisher":"P","authors":[{"name":" "}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"title"`)
		assert.Contains(t, w.Body.String(), `"field":"authors[0].name"`)
	})

	t.Run("padded names reach the service trimmed", func(t *testing.T) {
		mockService.EXPECT().AddBook(gomock.Any(), goBook()).Return(true, nil)

		w := serve(mux, http.MethodPost, "/book", `{"isbn":111,"title":" Go ","publisher":"Acme ","authors":[{"name":" Alice","birthDate":"1980-01-01"}]}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockService.EXPECT().AddBook(gomock.Any(), gomock.Any()).Return(false, context.DeadlineExceeded)

		w := serve(mux, http.MethodPost, "/book", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})
}

func TestHTTPHandler_FindBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := NewMockBookService(ctrl)
	mux := newTestMux(NewHTTPHandler(mockService, nil))

	tests := []struct {
		name           string
		target         string
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "success",
			target: "/book/111",
			setupMock: func() {
				mockService.EXPECT().FindBookByISBN(gomock.Any(), int64(111)).Return(goBook(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/book/999",
			setupMock: func() {
				mockService.EXPECT().FindBookByISBN(gomock.Any(), int64(999)).Return(BookDto{}, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non numeric isbn",
			target:         "/book/abc",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative isbn",
			target:         "/book/-5",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			w := serve(mux, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHTTPHandler_Mutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := NewMockBookService(ctrl)
	mux := newTestMux(NewHTTPHandler(mockService, nil))

	t.Run("remove book", func(t *testing.T) {
		mockService.EXPECT().RemoveBook(gomock.Any(), int64(111)).Return(goBook(), nil)

		w := serve(mux, http.MethodDelete, "/book/111", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Go"`)
	})

	t.Run("update title", func(t *testing.T) {
		updated := goBook()
		updated.Title = "New Title"
		mockService.EXPECT().UpdateBook(gomock.Any(), int64(111), "New Title").Return(updated, nil)

		w := serve(mux, http.MethodPut, "/book/111/title/New%20Title", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"New Title"`)
	})

	t.Run("update missing book", func(t *testing.T) {
		mockService.EXPECT().UpdateBook(gomock.Any(), int64(5), "X").Return(BookDto{}, ErrNotFound)

		w := serve(mux, http.MethodPut, "/book/5/title/X", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove author", func(t *testing.T) {
		mockService.EXPECT().RemoveAuthor(gomock.Any(), "Alice").Return(alice, nil)

		w := serve(mux, http.MethodDelete, "/author/Alice", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"name":"Alice","birthDate":"1980-01-01"}}`, w.Body.String())
	})

	t.Run("remove unknown author", func(t *testing.T) {
		mockService.EXPECT().RemoveAuthor(gomock.Any(), "Nobody").Return(AuthorDto{}, ErrNotFound)

		w := serve(mux, http.MethodDelete, "/author/Nobody", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockService := NewMockBookService(ctrl)
	mux := newTestMux(NewHTTPHandler(mockService, nil))

	t.Run("books by author", func(t *testing.T) {
		mockService.EXPECT().FindBooksByAuthor(gomock.Any(), "Alice").Return([]BookDto{goBook()}, nil)

		w := serve(mux, http.MethodGet, "/books/author/Alice", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("books by unknown publisher", func(t *testing.T) {
		mockService.EXPECT().FindBooksByPublisher(gomock.Any(), "Nowhere").Return([]BookDto{}, nil)

		w := serve(mux, http.MethodGet, "/books/publisher/Nowhere", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0}}`, w.Body.String())
	})

	t.Run("authors of book", func(t *testing.T) {
		mockService.EXPECT().FindBookAuthors(gomock.Any(), int64(111)).Return([]AuthorDto{alice}, nil)

		w := serve(mux, http.MethodGet, "/authors/book/111", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"name":"Alice","birthDate":"1980-01-01"}]}`, w.Body.String())
	})

	t.Run("publishers of author", func(t *testing.T) {
		mockService.EXPECT().FindPublishersByAuthor(gomock.Any(), "Alice").Return([]string{"Acme", "Beta"}, nil)

		w := serve(mux, http.MethodGet, "/publishers/author/Alice", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":["Acme","Beta"]}`, w.Body.String())
	})
}

func TestHTTPHandler_WithMemoryStore(t *testing.T) {
	mux := newTestMux(NewHTTPHandler(NewService(NewMemoryStore()), nil))

	w := serve(mux, http.MethodPost, "/book", `{"isbn":111,"title":"Go","publisher":"Acme","authors":[{"name":"Alice","birthDate":"1980-01-01"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(mux, http.MethodDelete, "/author/Alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(mux, http.MethodGet, "/book/111", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Entity not found"}}`, w.Body.String())
}

func TestHTTPHandler_PaddedAuthorIsReachableByPath(t *testing.T) {
	mux := newTestMux(NewHTTPHandler(NewService(NewMemoryStore()), nil))

	w := serve(mux, http.MethodPost, "/book", `{"isbn":7,"title":"T","publisher":"P","authors":[{"name":" Alice "}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(mux, http.MethodGet, "/books/author/Alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = serve(mux, http.MethodDelete, "/author/Alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
