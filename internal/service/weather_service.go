package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"crop-advisor-be/internal/dto"
)

const defaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5"

// Weather responses barely change within a slot, so cache them briefly.
const weatherCacheTTL = 10 * time.Minute

// Upstream returns forecast slots in 3-hour steps; the first 8 cover 24h.
const forecastEntries = 8

type IWeatherService interface {
	GetCurrent(ctx context.Context, city string) (*dto.WeatherInfo, error)
	GetForecast(ctx context.Context, city string) ([]dto.ForecastEntry, error)
}

type weatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   sync.Map // In-memory cache
}

// Cache Item Wrapper
type cachedWeather struct {
	data      interface{}
	expiresAt time.Time
}

func NewWeatherService(apiKey, baseURL string) IWeatherService {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &weatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// --- Caching Helpers ---

func (s *weatherService) getFromCache(key string) (interface{}, bool) {
	val, ok := s.cache.Load(key)
	if !ok {
		return nil, false
	}
	item := val.(cachedWeather)
	if time.Now().After(item.expiresAt) {
		s.cache.Delete(key)
		return nil, false
	}
	return item.data, true
}

func (s *weatherService) setCache(key string, data interface{}) {
	s.cache.Store(key, cachedWeather{
		data:      data,
		expiresAt: time.Now().Add(weatherCacheTTL),
	})
}

// --- Implementations ---

func (s *weatherService) GetCurrent(ctx context.Context, city string) (*dto.WeatherInfo, error) {
	if s.apiKey == "" {
		return nil, errors.New("Weather API key not configured")
	}

	cacheKey := fmt.Sprintf("current:%s", city)
	if val, ok := s.getFromCache(cacheKey); ok {
		return val.(*dto.WeatherInfo), nil
	}

	body, err := s.fetch(ctx, "/weather", city)
	if err != nil {
		return nil, err
	}

	var result struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Error fetching weather: %w", err)
	}

	info := &dto.WeatherInfo{
		City:        result.Name,
		Country:     result.Sys.Country,
		Temperature: result.Main.Temp,
		FeelsLike:   result.Main.FeelsLike,
		Humidity:    result.Main.Humidity,
		WindSpeed:   result.Wind.Speed,
		Pressure:    result.Main.Pressure,
	}
	if len(result.Weather) > 0 {
		info.Description = result.Weather[0].Description
	}

	s.setCache(cacheKey, info)
	return info, nil
}

func (s *weatherService) GetForecast(ctx context.Context, city string) ([]dto.ForecastEntry, error) {
	if s.apiKey == "" {
		return nil, errors.New("Weather API key not configured")
	}

	cacheKey := fmt.Sprintf("forecast:%s", city)
	if val, ok := s.getFromCache(cacheKey); ok {
		return val.([]dto.ForecastEntry), nil
	}

	body, err := s.fetch(ctx, "/forecast", city)
	if err != nil {
		return nil, err
	}

	var result struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Error fetching forecast: %w", err)
	}

	entries := []dto.ForecastEntry{}
	for i, item := range result.List {
		if i >= forecastEntries {
			break
		}
		entry := dto.ForecastEntry{
			Datetime: item.DtTxt,
			Temp:     item.Main.Temp,
			Humidity: item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}

	s.setCache(cacheKey, entries)
	return entries, nil
}

func (s *weatherService) fetch(ctx context.Context, path, city string) ([]byte, error) {
	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", s.apiKey)
	params.Add("units", "metric")

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("Error fetching weather: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Error fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("City not found or API error: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
