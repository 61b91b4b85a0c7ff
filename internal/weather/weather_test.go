package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const currentPayload = `{
  "main": {"temp": 28.5, "feels_like": 31.2, "humidity": 62, "pressure": 1008},
  "wind": {"speed": 3.4},
  "weather": [{"description": "scattered clouds"}]
}`

const forecastPayload = `{
  "list": [
    {"dt_txt": "2026-08-28 12:00:00", "main": {"temp": 29.1, "humidity": 60},
     "weather": [{"description": "light rain"}], "rain": {"3h": 1.2}},
    {"dt_txt": "2026-08-28 15:00:00", "main": {"temp": 30.4, "humidity": 55},
     "weather": [{"description": "clear sky"}]}
  ]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestFetch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		switch r.URL.Path {
		case "/weather":
			w.Write([]byte(currentPayload))
		case "/forecast":
			w.Write([]byte(forecastPayload))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	snap := c.Fetch(context.Background(), 27.1767, 78.0081)
	require.NotNil(t, snap)
	require.Equal(t, 28.5, snap.Current.Temperature)
	require.Equal(t, 31.2, snap.Current.FeelsLike)
	require.Equal(t, "scattered clouds", snap.Current.Description)

	require.Len(t, snap.Forecast, 2)
	require.Equal(t, "2026-08-28 12:00:00", snap.Forecast[0].Date)
	require.Equal(t, 1.2, snap.Forecast[0].Rain)
	require.Equal(t, 0.0, snap.Forecast[1].Rain)
	require.Equal(t, "clear sky", snap.Forecast[1].Description)
}

func TestFetchProviderErrorReturnsNil(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(currentPayload))
	})

	require.Nil(t, c.Fetch(context.Background(), 1, 1))
}

func TestFetchTransportErrorReturnsNil(t *testing.T) {
	c := NewClient("test-key")
	c.baseURL = "http://127.0.0.1:0"

	require.Nil(t, c.Fetch(context.Background(), 1, 1))
}

func TestFetchForecastCapped(t *testing.T) {
	list := `{"list": [`
	for i := 0; i < 12; i++ {
		if i > 0 {
			list += ","
		}
		list += `{"dt_txt": "2026-08-28 12:00:00", "main": {"temp": 25, "humidity": 50}}`
	}
	list += `]}`

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			w.Write([]byte(list))
			return
		}
		w.Write([]byte(currentPayload))
	})

	snap := c.Fetch(context.Background(), 1, 1)
	require.NotNil(t, snap)
	require.Len(t, snap.Forecast, maxForecastSize)
}
