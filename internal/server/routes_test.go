package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/config"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/farm"
)

type fakeDB struct{}

func (fakeDB) Health() map[string]string { return map[string]string{"status": "up"} }
func (fakeDB) Close()                    {}
func (fakeDB) Store() *database.Store    { return nil }

func testServer() *Server {
	return &Server{
		port:      8080,
		db:        fakeDB{},
		cfg:       &config.AppConfig{OpenWeatherAPIKey: "key"},
		farm:      farm.NewHandler(nil, nil, nil, nil, nil, 27.1767, 78.0081),
		startTime: time.Now(),
	}
}

func doRequest(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	testServer().RegisterRoutes().ServeHTTP(rec, req)
	return rec
}

func TestHomeRoute(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Agricultural Advisory System", body["message"])
	require.NotEmpty(t, body["endpoints"])
}

func TestHealthRoute(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "connected", body["weather_api"])

	db, ok := body["database"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "up", db["status"])
}

func TestRoutesRejectBadInput(t *testing.T) {
	cases := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/weather"},
		{http.MethodGet, "/getCrops"},
		{http.MethodGet, "/getSuggestions"},
		{http.MethodGet, "/getDailySuggestion"},
		{http.MethodGet, "/get_farmer_profile"},
		{http.MethodGet, "/getChats"},
	}
	for _, tc := range cases {
		rec := doRequest(t, tc.method, tc.target)
		require.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
