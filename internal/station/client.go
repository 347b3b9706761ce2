package station

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.weather.com/v2/pws/observations/current"

// ErrUnknownStation is returned for a station that is not configured.
var ErrUnknownStation = errors.New("unknown station")

// Station is one configured automatic weather station (АМС).
type Station struct {
	Key       string // lookup key, lower-case city name
	StationID string
	APIKey    string
	Display   string // city name in the locative case for the report header
}

// Client fetches current observations from the weather.com PWS API.
type Client struct {
	baseURL  string
	httpc    *http.Client
	stations map[string]Station
}

func NewClient(stations []Station) *Client {
	m := make(map[string]Station, len(stations))
	for _, s := range stations {
		m[strings.ToLower(s.Key)] = s
	}
	return &Client{
		baseURL:  defaultBaseURL,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		stations: m,
	}
}

// Observation is one current-conditions report, units already converted
// for display (wind in m/s, pressure in hPa).
type Observation struct {
	Display        string
	ObsTimeLocal   string
	Temperature    int
	Feelslike      int
	Humidity       int
	DewPoint       int
	WindSpeedMS    float64
	WindGustMS     float64
	WindDirection  string
	UVIndex        int
	SolarRadiation float64
	Pressure       float64
	PrecipRate     float64
	PrecipTotal    float64
}

type observationsResponse struct {
	Observations []struct {
		Humidity       *float64 `json:"humidity"`
		WindDir        *float64 `json:"winddir"`
		UV             *float64 `json:"uv"`
		SolarRadiation *float64 `json:"solarRadiation"`
		ObsTimeLocal   string   `json:"obsTimeLocal"`
		Metric         struct {
			Temp        *float64 `json:"temp"`
			DewPt       *float64 `json:"dewpt"`
			HeatIndex   *float64 `json:"heatIndex"`
			WindSpeed   *float64 `json:"windSpeed"`
			WindGust    *float64 `json:"windGust"`
			Pressure    *float64 `json:"pressure"`
			PrecipRate  *float64 `json:"precipRate"`
			PrecipTotal *float64 `json:"precipTotal"`
		} `json:"metric"`
	} `json:"observations"`
}

// Lookup resolves a user-typed station name.
func (c *Client) Lookup(name string) (Station, bool) {
	s, ok := c.stations[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Observations fetches the current report for a configured station.
func (c *Client) Observations(ctx context.Context, name string) (*Observation, error) {
	st, ok := c.Lookup(name)
	if !ok {
		return nil, ErrUnknownStation
	}

	params := url.Values{}
	params.Set("stationId", st.StationID)
	params.Set("format", "json")
	params.Set("units", "m")
	params.Set("apiKey", st.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("station request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station api status %d", resp.StatusCode)
	}

	var parsed observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode station response: %w", err)
	}
	if len(parsed.Observations) == 0 {
		return nil, fmt.Errorf("station returned no observations")
	}

	obs := parsed.Observations[0]
	windSpeedKmh := deref(obs.Metric.WindSpeed)
	windGustKmh := deref(obs.Metric.WindGust)

	out := &Observation{
		Display:        st.Display,
		ObsTimeLocal:   obs.ObsTimeLocal,
		Temperature:    round(deref(obs.Metric.Temp)),
		Feelslike:      round(deref(obs.Metric.HeatIndex)),
		Humidity:       round(deref(obs.Humidity)),
		DewPoint:       round(deref(obs.Metric.DewPt)),
		WindSpeedMS:    round1(windSpeedKmh / 3.6),
		WindGustMS:     round1(windGustKmh / 3.6),
		WindDirection:  WindDirection(deref(obs.WindDir)),
		UVIndex:        round(deref(obs.UV)),
		SolarRadiation: round1(deref(obs.SolarRadiation)),
		Pressure:       round1(deref(obs.Metric.Pressure)),
		PrecipRate:     round1(deref(obs.Metric.PrecipRate)),
		PrecipTotal:    round1(deref(obs.Metric.PrecipTotal)),
	}
	return out, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round(v float64) int { return int(math.Round(v)) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

var windDirs = []string{
	"С", "ССВ", "СВ", "ВСВ", "В", "ВЮВ", "ЮВ", "ЮЮВ",
	"Ю", "ЮЮЗ", "ЮЗ", "ЗЮЗ", "З", "ЗСЗ", "СЗ", "ССЗ",
}

// WindDirection maps degrees to a 16-point compass name. Sector midpoints
// round half to even.
func WindDirection(degree float64) string {
	ix := int(math.RoundToEven(degree/22.5)) % 16
	if ix < 0 {
		ix += 16
	}
	return windDirs[ix]
}
