/*
Package weather wraps the OpenWeatherMap current-conditions and forecast
endpoints behind a single Fetch call. The adapter never surfaces an error:
any transport, decode, or non-200 failure degrades to an absent snapshot,
which downstream consumers must treat as valid input.
*/
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5"
	requestTimeout  = 10 * time.Second
	maxForecastSize = 8
)

// Current holds the normalized current conditions.
type Current struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Pressure    float64 `json:"pressure"`
}

// ForecastEntry is one three-hour forecast slot.
type ForecastEntry struct {
	Date        string  `json:"date"` // provider text form, "2006-01-02 15:04:05"
	Temp        float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Rain        float64 `json:"rain"` // mm over the 3h window
}

// Snapshot is the full weather view passed to the suggestion pipeline and
// returned by the /weather endpoint.
type Snapshot struct {
	Current  Current         `json:"current"`
	Forecast []ForecastEntry `json:"forecast"`
}

// Client is the weather adapter. Credentials are set once at startup.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Fetch returns the current conditions plus up to 8 forecast entries, or nil
// when either provider call fails for any reason.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) *Snapshot {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur, err := c.fetchCurrent(gctx, lat, lon)
		if err != nil {
			return err
		}
		snap.Current = cur
		return nil
	})
	g.Go(func() error {
		fc, err := c.fetchForecast(gctx, lat, lon)
		if err != nil {
			return err
		}
		snap.Forecast = fc
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Weather fetch failed")
		return nil
	}
	return &snap
}

func (c *Client) fetchCurrent(ctx context.Context, lat, lon float64) (Current, error) {
	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := c.getJSON(ctx, "/weather", lat, lon, &payload); err != nil {
		return Current{}, err
	}

	cur := Current{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Pressure:    payload.Main.Pressure,
	}
	if len(payload.Weather) > 0 {
		cur.Description = payload.Weather[0].Description
	}
	return cur, nil
}

func (c *Client) fetchForecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}

	if err := c.getJSON(ctx, "/forecast", lat, lon, &payload); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, maxForecastSize)
	for _, item := range payload.List {
		if len(entries) == maxForecastSize {
			break
		}
		entry := ForecastEntry{
			Date:     item.DtTxt,
			Temp:     item.Main.Temp,
			Humidity: item.Main.Humidity,
			Rain:     item.Rain.ThreeH,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, lat, lon float64, out any) error {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}
