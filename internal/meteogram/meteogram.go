package meteogram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxCities caps one meteogram request.
const MaxCities = 10

// City is one catalogue entry: the name users type and the URL of the
// rendered meteogram image for it.
type City struct {
	EngName string `json:"eng_name"`
	URL     string `json:"url"`
}

// Catalog is the static list of cities with available meteograms.
type Catalog struct {
	cities []City
}

func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cities []City
	if err := json.NewDecoder(f).Decode(&cities); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &Catalog{cities: cities}, nil
}

func (c *Catalog) Find(name string) (City, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, city := range c.cities {
		if city.EngName == name {
			return city, true
		}
	}
	return City{}, false
}

func (c *Catalog) Len() int { return len(c.cities) }

// SplitCities parses a comma-separated user input, trimming and
// upper-casing each name and capping the count at MaxCities.
func SplitCities(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == MaxCities {
			break
		}
	}
	return out
}

// Fetcher downloads meteogram images into a working directory.
type Fetcher struct {
	dir   string
	httpc *http.Client
}

func NewFetcher(dir string) (*Fetcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure images dir: %w", err)
	}
	return &Fetcher{dir: dir, httpc: &http.Client{Timeout: 20 * time.Second}}, nil
}

// Fetch downloads the city's meteogram and returns the local file path.
// The file is overwritten on every call; callers may remove it after
// sending.
func (f *Fetcher) Fetch(ctx context.Context, city City) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, city.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch meteogram for %s: %w", city.EngName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("meteogram for %s: status %d", city.EngName, resp.StatusCode)
	}

	path := filepath.Join(f.dir, "temp_"+strings.ToLower(city.EngName)+".png")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return path, nil
}
