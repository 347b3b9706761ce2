package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "http://api.weatherapi.com/v1"

// ErrUnknownLocation is returned when the provider does not recognize the
// requested place.
var ErrUnknownLocation = errors.New("unknown location")

// Client talks to api.weatherapi.com.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type Condition struct {
	Text string `json:"text"`
}

type Location struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type Current struct {
	Location    Location
	TempC       float64
	FeelslikeC  float64
	Condition   string
	Humidity    int
	WindKph     float64
	WindDir     string
	PressureMb  float64
	PrecipMm    float64
	Cloud       int
	LastUpdated string
}

type Hour struct {
	Time      string    `json:"time"`
	TempC     float64   `json:"temp_c"`
	WindKph   float64   `json:"wind_kph"`
	PrecipMm  float64   `json:"precip_mm"`
	Condition Condition `json:"condition"`
}

type Day struct {
	MaxTempC      float64   `json:"maxtemp_c"`
	MinTempC      float64   `json:"mintemp_c"`
	AvgHumidity   float64   `json:"avghumidity"`
	MaxWindKph    float64   `json:"maxwind_kph"`
	TotalPrecipMm float64   `json:"totalprecip_mm"`
	Condition     Condition `json:"condition"`
}

type ForecastDay struct {
	Date  string `json:"date"`
	Day   Day    `json:"day"`
	Hours []Hour `json:"hour"`
}

type Forecast struct {
	Location Location
	Days     []ForecastDay
}

type currentResponse struct {
	Location Location `json:"location"`
	Current  struct {
		TempC       float64   `json:"temp_c"`
		FeelslikeC  float64   `json:"feelslike_c"`
		Condition   Condition `json:"condition"`
		Humidity    int       `json:"humidity"`
		WindKph     float64   `json:"wind_kph"`
		WindDir     string    `json:"wind_dir"`
		PressureMb  float64   `json:"pressure_mb"`
		PrecipMm    float64   `json:"precip_mm"`
		Cloud       int       `json:"cloud"`
		LastUpdated string    `json:"last_updated"`
	} `json:"current"`
}

type forecastResponse struct {
	Location Location `json:"location"`
	Forecast struct {
		ForecastDay []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

// CurrentByCoords fetches current conditions for a latitude/longitude pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*Current, error) {
	q := fmt.Sprintf("%f,%f", lat, lon)
	var resp currentResponse
	if err := c.get(ctx, "/current.json", q, 0, &resp); err != nil {
		return nil, err
	}
	cur := &Current{
		Location:    resp.Location,
		TempC:       resp.Current.TempC,
		FeelslikeC:  resp.Current.FeelslikeC,
		Condition:   resp.Current.Condition.Text,
		Humidity:    resp.Current.Humidity,
		WindKph:     resp.Current.WindKph,
		WindDir:     resp.Current.WindDir,
		PressureMb:  resp.Current.PressureMb,
		PrecipMm:    resp.Current.PrecipMm,
		Cloud:       resp.Current.Cloud,
		LastUpdated: resp.Current.LastUpdated,
	}
	return cur, nil
}

// Forecast fetches a days-long forecast for a free-form place name.
func (c *Client) Forecast(ctx context.Context, place string, days int) (*Forecast, error) {
	var resp forecastResponse
	if err := c.get(ctx, "/forecast.json", place, days, &resp); err != nil {
		return nil, err
	}
	return &Forecast{Location: resp.Location, Days: resp.Forecast.ForecastDay}, nil
}

func (c *Client) get(ctx context.Context, path, query string, days int, out interface{}) error {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("lang", "ru")
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest {
		return ErrUnknownLocation
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather api status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}
