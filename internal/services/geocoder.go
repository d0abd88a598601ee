package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/wellingtonshopee/analitics/internal/common"
	"github.com/wellingtonshopee/analitics/internal/metrics"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

// Sentinel city values returned for unusable postal codes.
const (
	CityCEPNotProvided = "ZIP not provided"
	CityCEPInvalid     = "invalid ZIP"
	CityNotFound       = "city not found"
)

// Geocoder resolves a Brazilian postal code (CEP) to a city name.
type Geocoder interface {
	CityForCEP(ctx context.Context, cep string) (string, error)
}

// ViaCEPGeocoder calls the public ViaCEP API with a bounded timeout, a
// single retry on transport errors, request pacing, and a read-through
// cache. Detail views call it per row, so everything after the first lookup
// of a CEP must be a cache hit.
type ViaCEPGeocoder struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   common.CacheInterface
	baseURL string
	metrics *metrics.MetricsRegistry
}

var _ Geocoder = (*ViaCEPGeocoder)(nil)

func NewViaCEPGeocoder(baseURL string, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry) *ViaCEPGeocoder {
	return &ViaCEPGeocoder{
		client:  &http.Client{Timeout: 3 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metricsReg,
	}
}

type viaCEPResponse struct {
	City  string `json:"localidade"`
	Error bool   `json:"erro"`
}

// CityForCEP resolves one CEP. Unusable input yields a sentinel city, not
// an error; only transport/decoding failures are errors.
func (g *ViaCEPGeocoder) CityForCEP(ctx context.Context, cep string) (string, error) {
	if cep == "" {
		return CityCEPNotProvided, nil
	}

	digits := onlyDigits(cep)
	if len(digits) != 8 {
		g.count("invalid")
		return CityCEPInvalid, nil
	}

	cacheKey := "geocode:" + digits
	if cached, found := g.cache.Get(cacheKey); found {
		if city, ok := cached.(string); ok {
			g.count("hit")
			return city, nil
		}
	}
	g.count("miss")

	city, err := g.fetch(ctx, digits)
	if err != nil {
		// one retry covers transient DNS/connection blips
		city, err = g.fetch(ctx, digits)
	}
	if err != nil {
		g.count("error")
		return "", err
	}

	g.cache.Set(cacheKey, city, 24*time.Hour)
	return city, nil
}

func (g *ViaCEPGeocoder) fetch(ctx context.Context, digits string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/json/", g.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("viacep returned status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Error || body.City == "" {
		return CityNotFound, nil
	}
	return body.City, nil
}

func (g *ViaCEPGeocoder) count(outcome string) {
	if g.metrics != nil {
		g.metrics.GeocoderLookupsTotal.WithLabelValues(outcome).Inc()
	}
}

// EnrichCities fills in the city of rows that carry a postal code but no
// city, using the geocoder. Lookup failures leave the row as-is; a detail
// view is never blocked on the geocoding collaborator.
func EnrichCities(ctx context.Context, g Geocoder, rows []dtos.ResultRow) []dtos.ResultRow {
	for i := range rows {
		if rows[i].City != "" || rows[i].Zipcode == "" {
			continue
		}
		city, err := g.CityForCEP(ctx, rows[i].Zipcode)
		if err != nil {
			continue
		}
		rows[i].City = city
	}
	return rows
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
