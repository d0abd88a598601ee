package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wellingtonshopee/analitics/internal/common"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) (*ViaCEPGeocoder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache := common.NewCacheService(5*time.Minute, 10*time.Minute)
	return NewViaCEPGeocoder(server.URL, cache, nil), server
}

func TestCityForCEP(t *testing.T) {
	var requests int
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/36880000/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"localidade": "Muriaé"}`))
	})

	city, err := geocoder.CityForCEP(context.Background(), "36880-000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if city != "Muriaé" {
		t.Errorf("expected Muriaé, got %q", city)
	}

	// Second lookup of the same CEP must come from cache.
	if _, err := geocoder.CityForCEP(context.Background(), "36880000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 upstream request, got %d", requests)
	}
}

func TestCityForCEPSentinels(t *testing.T) {
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	})

	city, err := geocoder.CityForCEP(context.Background(), "")
	if err != nil || city != CityCEPNotProvided {
		t.Errorf("expected %q, got %q (err %v)", CityCEPNotProvided, city, err)
	}

	city, err = geocoder.CityForCEP(context.Background(), "123")
	if err != nil || city != CityCEPInvalid {
		t.Errorf("expected %q, got %q (err %v)", CityCEPInvalid, city, err)
	}

	city, err = geocoder.CityForCEP(context.Background(), "99999999")
	if err != nil || city != CityNotFound {
		t.Errorf("expected %q, got %q (err %v)", CityNotFound, city, err)
	}
}

func TestCityForCEPRetriesOnce(t *testing.T) {
	var requests int
	geocoder, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"localidade": "Muriaé"}`))
	})

	city, err := geocoder.CityForCEP(context.Background(), "36880000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if city != "Muriaé" || requests != 2 {
		t.Errorf("expected success after one retry, got %q after %d requests", city, requests)
	}
}

type stubGeocoder struct {
	CityForCEPFunc func(ctx context.Context, cep string) (string, error)
}

func (s *stubGeocoder) CityForCEP(ctx context.Context, cep string) (string, error) {
	return s.CityForCEPFunc(ctx, cep)
}

func TestEnrichCities(t *testing.T) {
	geocoder := &stubGeocoder{
		CityForCEPFunc: func(ctx context.Context, cep string) (string, error) {
			if cep == "00000000" {
				return "", errors.New("timeout")
			}
			return "Muriaé", nil
		},
	}

	rows := []dtos.ResultRow{
		{TrackingNumber: "BR001", Zipcode: "36880000"},
		{TrackingNumber: "BR002", Zipcode: "36880000", City: "Leopoldina"},
		{TrackingNumber: "BR003"},
		{TrackingNumber: "BR004", Zipcode: "00000000"},
	}

	enriched := EnrichCities(context.Background(), geocoder, rows)

	if enriched[0].City != "Muriaé" {
		t.Errorf("expected empty city to be filled, got %q", enriched[0].City)
	}
	if enriched[1].City != "Leopoldina" {
		t.Errorf("existing city must be left alone, got %q", enriched[1].City)
	}
	if enriched[2].City != "" {
		t.Errorf("row without zipcode must stay empty, got %q", enriched[2].City)
	}
	if enriched[3].City != "" {
		t.Errorf("lookup failure must leave the row as-is, got %q", enriched[3].City)
	}
}
