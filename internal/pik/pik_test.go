package pik

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("Факт.данные 34123 11.08.2025")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.StationID != "34123" {
		t.Errorf("station = %q", q.StationID)
	}
	if q.Date.Format("02.01.2006") != "11.08.2025" {
		t.Errorf("date = %v", q.Date)
	}

	for _, bad := range []string{
		"Факт.данные",
		"Факт.данные 34123",
		"Факт.данные 34123 2025-08-11",
		"Факт.данные Воронеж 11.08.2025",
		"погода 34123 11.08.2025",
	} {
		if _, err := ParseQuery(bad); err == nil {
			t.Errorf("query %q must not parse", bad)
		}
	}
}

// buildSummaryRow produces a 41-cell table row with the given date.
func buildSummaryRow(date string) string {
	cells := make([]string, 41)
	for i := range cells {
		cells[i] = ""
	}
	cells[1] = "Воронеж"
	cells[2] = date
	cells[3] = "+21.4"
	cells[6] = "+15.0"
	cells[7] = "+28.3"
	cells[8] = "64"
	cells[13] = "3"
	cells[14] = "9"
	cells[16] = "1000.0"
	cells[26] = "2.3"
	cells[29] = "9,12"

	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		fmt.Fprintf(&b, "<td>%s</td>", c)
	}
	b.WriteString("</tr>")
	return b.String()
}

func summaryPage(rows ...string) string {
	return `<html><body><table class="tab">
		<tr><td>header</td></tr>
		<tr><td>header</td></tr>` +
		strings.Join(rows, "\n") +
		`</table></body></html>`
}

func TestParseSummary(t *testing.T) {
	page := summaryPage(buildSummaryRow("10.08.2025"), buildSummaryRow("11.08.2025"))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	date, _ := time.Parse("02.01.2006", "11.08.2025")
	s, err := parseSummary(doc, date)
	if err != nil {
		t.Fatalf("parseSummary: %v", err)
	}

	if s.StationName != "Воронеж" {
		t.Errorf("station name = %q", s.StationName)
	}
	if s.TempAvg != "21.4" {
		t.Errorf("leading '+' must be stripped, got %q", s.TempAvg)
	}
	if s.PressureAvg != "750.0" {
		t.Errorf("pressure must convert hPa to mmHg, got %q", s.PressureAvg)
	}
	if s.CaseRain != "9,12" {
		t.Errorf("rain cases = %q", s.CaseRain)
	}

	text := s.Format()
	if !strings.Contains(text, "за 11.08.2025") {
		t.Errorf("report missing date:\n%s", text)
	}
	if !strings.Contains(text, "• Дождь: 9,12") {
		t.Errorf("report missing rain cases:\n%s", text)
	}
	if !strings.Contains(text, "• Град: —") {
		t.Errorf("empty hail cell must render as dash:\n%s", text)
	}
}

func TestParseSummary_MissingDay(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(summaryPage(buildSummaryRow("10.08.2025"))))
	date, _ := time.Parse("02.01.2006", "11.08.2025")
	if _, err := parseSummary(doc, date); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestParseSummary_NoTable(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><body>пусто</body></html>"))
	if _, err := parseSummary(doc, time.Now()); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	var postedUser, postedToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`<html><form>
				<input type="hidden" name="csrf" value="tok123">
				<input type="text" name="username">
			</form></html>`))
			return
		}
		_ = r.ParseForm()
		postedUser = r.PostFormValue("username")
		postedToken = r.PostFormValue("csrf")
		_, _ = w.Write([]byte(`<html>Личный кабинет <a href="/logout.php">Выход</a></html>`))
	}))
	defer srv.Close()

	c, err := NewClient("demo", "secret")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.baseURL = srv.URL

	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if postedUser != "demo" {
		t.Errorf("username = %q", postedUser)
	}
	if postedToken != "tok123" {
		t.Errorf("hidden input must be echoed back, got %q", postedToken)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>Неверный логин или пароль</html>`))
	}))
	defer srv.Close()

	c, _ := NewClient("demo", "wrong")
	c.baseURL = srv.URL

	if err := c.Login(context.Background()); err != ErrLoginFailed {
		t.Fatalf("want ErrLoginFailed, got %v", err)
	}
}
