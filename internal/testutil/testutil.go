package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewRequest creates a new HTTP request for testing. A string body is sent as is,
// anything else is JSON encoded.
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(b)
	}
	if bodyBytes == nil {
		return httptest.NewRequest(method, path, nil)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithID creates a request carrying an X-Request-Id header.
func NewRequestWithID(method, path string, body any, requestID string) *http.Request {
	r := NewRequest(method, path, body)
	if requestID != "" {
		r.Header.Set("X-Request-Id", requestID)
	}
	return r
}

// RecordResponse holds a decoded response envelope.
type RecordResponse struct {
	Code   int
	Header http.Header
	Raw    string
	Body   map[string]any
}

// RecordHTTPResponse decodes the recorded response body as a JSON object when possible.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Raw:    string(bodyBytes),
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code of an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, ok := r.Body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// Serve runs req through h and records the response.
func Serve(h http.Handler, req *http.Request) RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return RecordHTTPResponse(w)
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Helper()
	Errorf(format string, args ...any)
}, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
