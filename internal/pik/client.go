package pik

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL = "http://www.pogodaiklimat.ru"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
)

var (
	// ErrLoginFailed means the site rejected the configured credentials.
	ErrLoginFailed = errors.New("pogodaiklimat login failed")
	// ErrNotFound means the summary table or the requested day is missing.
	ErrNotFound = errors.New("summary data not found")

	queryRe = regexp.MustCompile(`^Факт\.данные\s+(\d+)\s+(\d{2}\.\d{2}\.\d{4})$`)
)

// Query is a parsed "Факт.данные <station> <date>" request.
type Query struct {
	StationID string
	Date      time.Time
}

// ParseQuery parses the user-typed summary request.
func ParseQuery(text string) (Query, error) {
	m := queryRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Query{}, fmt.Errorf("bad summary query %q", text)
	}
	date, err := time.Parse("02.01.2006", m[2])
	if err != nil {
		return Query{}, fmt.Errorf("bad summary date %q: %w", m[2], err)
	}
	return Query{StationID: m[1], Date: date}, nil
}

// Client scrapes the authenticated summary pages of pogodaiklimat.ru.
type Client struct {
	baseURL  string
	login    string
	password string
	httpc    *http.Client
}

func NewClient(login, password string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL:  defaultBaseURL,
		login:    login,
		password: password,
		httpc:    &http.Client{Timeout: 15 * time.Second, Jar: jar},
	}, nil
}

// Login authenticates the session. The login form carries hidden inputs
// that must be echoed back.
func (c *Client) Login(ctx context.Context) error {
	doc, err := c.fetchDoc(ctx, c.baseURL+"/login.php")
	if err != nil {
		return err
	}

	form := url.Values{}
	doc.Find(`input[type="hidden"]`).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			return
		}
		value, _ := s.Attr("value")
		form.Set(name, value)
	})
	form.Set("username", c.login)
	form.Set("password", c.password)
	form.Set("submit", "Войти")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login.php", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read login response: %w", err)
	}
	if !strings.Contains(string(body), "Выход") && !strings.Contains(strings.ToLower(string(body)), "logout") {
		return ErrLoginFailed
	}
	return nil
}

// DailySummary loads the monthly table for the query's station and picks
// the row matching the query's day.
func (c *Client) DailySummary(ctx context.Context, q Query) (*Summary, error) {
	u := fmt.Sprintf("%s/summary.php?m=%d&y=%d&id=%s",
		c.baseURL, q.Date.Month(), q.Date.Year(), url.QueryEscape(q.StationID))
	doc, err := c.fetchDoc(ctx, u)
	if err != nil {
		return nil, err
	}
	s, err := parseSummary(doc, q.Date)
	if err != nil {
		return nil, err
	}
	s.StationID = q.StationID
	return s, nil
}

func (c *Client) fetchDoc(ctx context.Context, u string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u, err)
	}
	return doc, nil
}

func parseSummary(doc *goquery.Document, date time.Time) (*Summary, error) {
	table := doc.Find("table.tab")
	if table.Length() == 0 {
		return nil, ErrNotFound
	}

	wantDate := date.Format("02.01.2006")
	var found *Summary

	table.Find("tr").Slice(2, goquery.ToEnd).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cols := row.Find("td")
		if cols.Length() < 41 {
			return true
		}
		if cleanText(cols.Eq(2)) != wantDate {
			return true
		}
		found = &Summary{
			Date:             wantDate,
			StationName:      cleanText(cols.Eq(1)),
			TempAvg:          cleanText(cols.Eq(3)),
			TempAnomaly:      cleanText(cols.Eq(4)),
			TempMin:          cleanText(cols.Eq(6)),
			TempMax:          cleanText(cols.Eq(7)),
			Humidity:         cleanText(cols.Eq(8)),
			HumidityMin:      cleanText(cols.Eq(9)),
			EffTempMin:       cleanText(cols.Eq(10)),
			EffTempMax:       cleanText(cols.Eq(11)),
			EffTempSun:       cleanText(cols.Eq(12)),
			Wind:             cleanText(cols.Eq(13)),
			WindGust:         cleanText(cols.Eq(14)),
			MinVisibility:    cleanText(cols.Eq(15)),
			PressureAvg:      toMmHg(cleanText(cols.Eq(16))),
			PressureMin:      toMmHg(cleanText(cols.Eq(17))),
			PressureMax:      toMmHg(cleanText(cols.Eq(18))),
			CloudAvg:         cleanText(cols.Eq(22)),
			CloudLow:         cleanText(cols.Eq(23)),
			PrecipNight:      cleanText(cols.Eq(24)),
			PrecipDay:        cleanText(cols.Eq(25)),
			PrecipSum:        cleanText(cols.Eq(26)),
			SnowCover:        cleanText(cols.Eq(27)),
			CaseRain:         cleanText(cols.Eq(29)),
			CaseSnow:         cleanText(cols.Eq(30)),
			CaseFog:          cleanText(cols.Eq(31)),
			CaseMist:         cleanText(cols.Eq(32)),
			CaseSnowstorm:    cleanText(cols.Eq(33)),
			CaseSnowDrift:    cleanText(cols.Eq(34)),
			CaseThunderstorm: cleanText(cols.Eq(35)),
			CaseTornado:      cleanText(cols.Eq(36)),
			CaseDustStorm:    cleanText(cols.Eq(37)),
			CaseDustDrift:    cleanText(cols.Eq(38)),
			CaseHail:         cleanText(cols.Eq(39)),
			CaseBlackIce:     cleanText(cols.Eq(40)),
		}
		return false
	})

	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func cleanText(s *goquery.Selection) string {
	text := strings.TrimSpace(s.Text())
	return strings.TrimPrefix(text, "+")
}

// toMmHg converts a hPa table cell to mm of mercury, keeping the raw text
// when it is not numeric.
func toMmHg(text string) string {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return strconv.FormatFloat(v*0.75, 'f', 1, 64)
}
