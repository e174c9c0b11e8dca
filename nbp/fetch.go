package nbp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/mwronski/belka/date"
)

// This file talks to nbp.pl: bulk download of the yearly archive CSVs, and a
// Web API fallback for single days the local archives do not cover yet.

// webAPIDay is the NBP Web API endpoint for Table A on a given day. A
// variable so tests can point it at a local server.
var webAPIDay = "https://api.nbp.pl/api/exchangerates/tables/a/%s/?format=json"

// diskCache implements a simple disk cache for HTTP responses. The cache key
// includes today's date, so entries expire daily; NBP publishes one table per
// business day and re-fetching more often is pointless.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("nbp-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// newDailyCachingClient returns an HTTP client whose responses are cached on
// disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}

// wget performs an HTTP GET and returns the response body.
func wget(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FetchArchives downloads the yearly Table A archive CSVs for the given years
// into dir, naming them the way NBP does so LoadArchives picks them up.
// It returns the paths written.
func FetchArchives(ctx context.Context, baseURL, dir string, years []int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %q: %w", dir, err)
	}
	client := newDailyCachingClient()

	var paths []string
	for _, year := range years {
		name := fmt.Sprintf("archiwum_tab_a_%d.csv", year)
		addr := fmt.Sprintf("%s/%s", baseURL, name)
		content, err := wget(ctx, client, addr)
		if err != nil {
			return paths, fmt.Errorf("downloading %s archive: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0644); err != nil {
			return paths, fmt.Errorf("writing %q: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ArchiveYears returns the default years to fetch: the current year and the
// two before it, enough to cover D-1 lookups across a year boundary.
func ArchiveYears() []int {
	y := date.Today().Year()
	return []int{y, y - 1, y - 2}
}

// FetchDay asks the NBP Web API for the Table A quotation of one currency on
// one day. It is the online fallback when the local archives lag behind; the
// API returns 404 on non-quotation days, which surfaces as an error.
func FetchDay(ctx context.Context, currency string, on date.Date) (decimal.Decimal, error) {
	addr := fmt.Sprintf(webAPIDay, on)

	body, err := wget(ctx, newDailyCachingClient(), addr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("NBP web API: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return decimal.Decimal{}, fmt.Errorf("NBP web API: invalid JSON: %w", err)
	}

	// The payload is a one-element array of tables, each with a rates list:
	// [{"table":"A","effectiveDate":"2024-01-02","rates":[{"code":"USD","mid":3.9432},...]}]
	path := "$[0].rates"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("NBP web API: parsing %q: %w", path, err)
	}
	rates, ok := jval.([]any)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("NBP web API: %q is not a list", path)
	}
	for _, r := range rates {
		entry, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if code, _ := entry["code"].(string); code != currency {
			continue
		}
		mid, ok := entry["mid"].(float64)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("NBP web API: %s mid rate is not a number", currency)
		}
		return decimal.NewFromFloat(mid), nil
	}
	return decimal.Decimal{}, fmt.Errorf("NBP web API: no %s quotation on %s", currency, on)
}
