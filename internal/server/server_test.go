package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getsignpost/signpost/internal/config"
	"github.com/getsignpost/signpost/internal/observability"
	"github.com/getsignpost/signpost/internal/router"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	r := router.New()
	require.NoError(t, r.Add(router.Route{Name: "user", Path: "/users/{id}", Methods: []string{"GET"}}))
	require.NoError(t, r.Add(router.Route{Name: "user.update", Path: "/users/{id}", Methods: []string{"PUT"}}))
	require.NoError(t, r.Add(router.Route{Name: "admin", Path: "/admin/{section}", Host: "admin.example.com"}))
	require.NoError(t, r.Add(router.Route{Name: "search", Path: "/search"}))

	return New(
		config.ServerConfig{Port: 8080},
		NewTableHolder(r),
		observability.NopLogger(),
		observability.NewMetrics("signpost_test"),
		nil,
	)
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signpost_test_start_time_seconds")
}

func TestServer_ListRoutes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/v1/routes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	routes, ok := body["routes"].([]any)
	require.True(t, ok)
	require.Len(t, routes, 4)

	first := routes[0].(map[string]any)
	assert.Equal(t, "user", first["name"])
	assert.Equal(t, "/users/{id}", first["path"])
}

func TestServer_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedRoute  string
		expectedParams map[string]any
	}{
		{
			name:           "matched with params",
			target:         "/v1/match?path=/users/42",
			expectedStatus: http.StatusOK,
			expectedRoute:  "user",
			expectedParams: map[string]any{"id": "42"},
		},
		{
			name:           "explicit method",
			target:         "/v1/match?path=/users/42&method=PUT",
			expectedStatus: http.StatusOK,
			expectedRoute:  "user.update",
			expectedParams: map[string]any{"id": "42"},
		},
		{
			name:           "method not allowed",
			target:         "/v1/match?path=/users/42&method=DELETE",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "not found",
			target:         "/v1/match?path=/missing",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "host override",
			target:         "/v1/match?path=/admin/users&host=admin.example.com",
			expectedStatus: http.StatusOK,
			expectedRoute:  "admin",
			expectedParams: map[string]any{"section": "users"},
		},
		{
			name:           "host mismatch",
			target:         "/v1/match?path=/admin/users&host=www.example.com",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing path parameter",
			target:         "/v1/match",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			rec := doRequest(s, httptest.NewRequest("GET", tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedRoute != "" {
				body := decodeBody(t, rec)
				assert.Equal(t, tt.expectedRoute, body["route"])
				assert.Equal(t, tt.expectedParams, body["params"])
			}
		})
	}
}

func TestServer_Match_405CarriesAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(s, httptest.NewRequest("GET", "/v1/match?path=/users/42&method=DELETE", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"GET"}, body["allowed"])
}

func TestServer_Resolve(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	// Any unregistered path is answered as a routing decision for
	// itself.
	rec := doRequest(s, httptest.NewRequest("GET", "/users/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user", body["route"])

	rec = doRequest(s, httptest.NewRequest("GET", "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Generate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		payload        string
		expectedStatus int
		expectedURL    string
	}{
		{
			name:           "substitution",
			payload:        `{"name":"user","params":[{"key":"id","value":"42"}]}`,
			expectedStatus: http.StatusOK,
			expectedURL:    "/users/42",
		},
		{
			name:           "residual query order",
			payload:        `{"name":"search","params":[{"key":"q","value":"x"},{"key":"page","value":2}]}`,
			expectedStatus: http.StatusOK,
			expectedURL:    "/search?q=x&page=2",
		},
		{
			name:           "sequence repeated keys",
			payload:        `{"name":"search","params":[{"key":"tag","value":["a","b"]}]}`,
			expectedStatus: http.StatusOK,
			expectedURL:    "/search?tag=a&tag=b",
		},
		{
			name:           "absolute with override",
			payload:        `{"name":"user","params":[{"key":"id","value":"1"}],"absolute":true,"scheme":"https","host":"api.example.com"}`,
			expectedStatus: http.StatusOK,
			expectedURL:    "https://api.example.com/users/1",
		},
		{
			name:           "unknown route",
			payload:        `{"name":"missing"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing name",
			payload:        `{"params":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			payload:        `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			req := httptest.NewRequest("POST", "/v1/generate", bytes.NewBufferString(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			rec := doRequest(s, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedURL != "" {
				assert.Equal(t, tt.expectedURL, decodeBody(t, rec)["url"])
			}
		})
	}
}

func TestServer_Generate_NumericScalar(t *testing.T) {
	t.Parallel()

	// JSON numbers arrive as float64; integral values must not grow a
	// decimal point in the path.
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/v1/generate",
		bytes.NewBufferString(`{"name":"user","params":[{"key":"id","value":42}]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(s, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/users/42", decodeBody(t, rec)["url"])
}

func TestServer_RequestIDHeader(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest("GET", "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = doRequest(s, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestServer_HotSwap(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(s, httptest.NewRequest("GET", "/v1/match?path=/fresh/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	replacement := router.New()
	require.NoError(t, replacement.Add(router.Route{Name: "fresh", Path: "/fresh/{id}"}))
	s.holder.Swap(replacement)

	rec = doRequest(s, httptest.NewRequest("GET", "/v1/match?path=/fresh/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", decodeBody(t, rec)["route"])
}
