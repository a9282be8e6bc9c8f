// Package weather fetches real-time and forecast conditions from Open-Meteo
// and condenses them into the summary the feature generator consumes. The
// provider is an optional upstream: every failure degrades to documented
// fallback values rather than propagating to the caller.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Summary condenses a forecast response into the fields the risk model was
// trained on: a 7-day historical window, current conditions, and a 14-day
// forecast window.
type Summary struct {
	HistTempMean7d   float64 `json:"temp_mean_7d"`
	HistPrecip7d     float64 `json:"precipitation_7d"`
	HistSoilMoisture float64 `json:"soil_moisture_7d"`

	CurrentTempMean     float64 `json:"current_temp_mean"`
	CurrentPrecip       float64 `json:"current_precip"`
	CurrentSoilMoisture float64 `json:"current_soil_moisture"`

	ForecastTemp14d   float64 `json:"forecast_temp_14d"`
	ForecastPrecip14d float64 `json:"forecast_precip_14d"`
}

// Fallback is the deterministic summary used when the provider cannot be
// reached. The values match what the model saw for unavailable weather
// during training.
func Fallback() Summary {
	return Summary{
		HistTempMean7d:      20,
		HistPrecip7d:        10,
		HistSoilMoisture:    0.3,
		CurrentTempMean:     20,
		CurrentPrecip:       0,
		CurrentSoilMoisture: 0.3,
		ForecastTemp14d:     20,
		ForecastPrecip14d:   10,
	}
}

// Provider abstracts a weather data source.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64) (Summary, error)
}

// OpenMeteo is a Provider backed by the free Open-Meteo forecast API.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewOpenMeteo builds an Open-Meteo provider. A nil client gets a 10-second
// timeout so a slow upstream can never stall the scorer.
func NewOpenMeteo(client *http.Client, log *zap.Logger) *OpenMeteo {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &OpenMeteo{
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		circuit: cb,
		log:     log,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (p *OpenMeteo) WithBaseURL(u string) *OpenMeteo {
	p.baseURL = u
	return p
}

type forecastResponse struct {
	Current struct {
		Temperature2m float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
	} `json:"current"`
	Daily struct {
		Temperature2mMean []float64 `json:"temperature_2m_mean"`
		PrecipitationSum  []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Fetch queries 7 past days plus a 14-day forecast and reduces the daily
// series into Summary windows.
func (p *OpenMeteo) Fetch(ctx context.Context, lat, lon float64) (Summary, error) {
	resp, err := p.circuit.Execute(func() (interface{}, error) {
		return p.doRequest(ctx, lat, lon)
	})
	if err != nil {
		return Summary{}, err
	}
	return p.summarize(resp.(*forecastResponse)), nil
}

func (p *OpenMeteo) doRequest(ctx context.Context, lat, lon float64) (*forecastResponse, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", "temperature_2m,precipitation")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,temperature_2m_mean,precipitation_sum")
	values.Set("timezone", "Asia/Tashkent")
	values.Set("past_days", "7")
	values.Set("forecast_days", "14")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}
	return &payload, nil
}

func (p *OpenMeteo) summarize(payload *forecastResponse) Summary {
	temps := payload.Daily.Temperature2mMean
	precips := payload.Daily.PrecipitationSum

	histTemp := payload.Current.Temperature2m
	if len(temps) >= 7 {
		histTemp = mean(temps[:7])
	}
	histPrecip := 0.0
	if len(precips) >= 7 {
		histPrecip = sum(precips[:7])
	}

	forecastTemp := histTemp
	if len(temps) > 7 {
		forecastTemp = mean(temps[7:])
	}
	forecastPrecip := 0.0
	if len(precips) > 7 {
		forecastPrecip = sum(precips[7:])
	}

	// Soil moisture estimated from the historical window: wetter and cooler
	// means wetter soil. Clamped to the model's [0.1, 0.9] range.
	soil := minf(0.9, 0.3+(histPrecip/100)*0.4) * (1 - (histTemp-15)/100)
	if soil < 0.1 {
		soil = 0.1
	}

	return Summary{
		HistTempMean7d:      histTemp,
		HistPrecip7d:        histPrecip,
		HistSoilMoisture:    soil,
		CurrentTempMean:     payload.Current.Temperature2m,
		CurrentPrecip:       payload.Current.Precipitation,
		CurrentSoilMoisture: soil,
		ForecastTemp14d:     forecastTemp,
		ForecastPrecip14d:   forecastPrecip,
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
