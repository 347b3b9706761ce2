package station

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWindDirection(t *testing.T) {
	cases := []struct {
		degree float64
		want   string
	}{
		{0, "С"},
		{45, "СВ"},
		{90, "В"},
		{180, "Ю"},
		{270, "З"},
		{340, "ССЗ"},
		{360, "С"},
		// sector midpoints round half to even
		{191.25, "Ю"},
		{348.75, "С"},
	}
	for _, c := range cases {
		if got := WindDirection(c.degree); got != c.want {
			t.Errorf("WindDirection(%v) = %q, want %q", c.degree, got, c.want)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	calm := RiskLevel(20, 2, 4, 1, 1000, 5)
	if !strings.Contains(calm, "🟢") {
		t.Errorf("calm conditions graded %q", calm)
	}

	heat := RiskLevel(46, 2, 4, 1, 1000, 5)
	if !strings.Contains(heat, "🟣") {
		t.Errorf("extreme heat graded %q", heat)
	}

	// the worst single factor wins
	gusts := RiskLevel(20, 2, 26, 1, 1000, 5)
	if !strings.Contains(gusts, "🔴") {
		t.Errorf("strong gusts graded %q", gusts)
	}
}

func TestLookup(t *testing.T) {
	c := NewClient([]Station{{Key: "армавир", StationID: "IARMAV7", APIKey: "k", Display: "Армавире"}})

	if _, ok := c.Lookup("Армавир"); !ok {
		t.Error("lookup must be case-insensitive")
	}
	if _, ok := c.Lookup("  армавир  "); !ok {
		t.Error("lookup must trim spaces")
	}
	if _, ok := c.Lookup("тамбов"); ok {
		t.Error("unknown station must not resolve")
	}
}

func TestObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("stationId"); got != "IARMAV7" {
			t.Errorf("stationId = %q", got)
		}
		_, _ = w.Write([]byte(`{"observations": [{
			"humidity": 55, "winddir": 90, "uv": 3, "solarRadiation": 120.4,
			"obsTimeLocal": "2025-08-11 12:00:00",
			"metric": {"temp": 31.6, "dewpt": 14.2, "heatIndex": 33.1,
				"windSpeed": 18.0, "windGust": 36.0, "pressure": 1001.3,
				"precipRate": 0.0, "precipTotal": 1.2}
		}]}`))
	}))
	defer srv.Close()

	c := NewClient([]Station{{Key: "армавир", StationID: "IARMAV7", APIKey: "k", Display: "Армавире"}})
	c.baseURL = srv.URL

	obs, err := c.Observations(context.Background(), "Армавир")
	if err != nil {
		t.Fatalf("observations: %v", err)
	}
	if obs.Temperature != 32 {
		t.Errorf("temperature = %d, want rounded 32", obs.Temperature)
	}
	if obs.WindSpeedMS != 5.0 {
		t.Errorf("wind speed = %v, want 18 km/h -> 5.0 m/s", obs.WindSpeedMS)
	}
	if obs.WindGustMS != 10.0 {
		t.Errorf("wind gust = %v, want 10.0 m/s", obs.WindGustMS)
	}
	if obs.WindDirection != "В" {
		t.Errorf("wind direction = %q", obs.WindDirection)
	}

	text := Format(obs)
	if !strings.Contains(text, "Погода в Армавире") {
		t.Errorf("report missing header:\n%s", text)
	}
	if !strings.Contains(text, "🟡") {
		t.Errorf("report missing risk grade (gusts 10 m/s + temp 32 -> level 2):\n%s", text)
	}
}

func TestObservationsUnknownStation(t *testing.T) {
	c := NewClient(nil)
	_, err := c.Observations(context.Background(), "Тамбов")
	if !errors.Is(err, ErrUnknownStation) {
		t.Fatalf("want ErrUnknownStation, got %v", err)
	}
}
