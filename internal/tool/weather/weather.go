// Package weather looks up current conditions from weatherapi.com.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
)

// APIKeyEnv is the environment variable holding the weather API key.
const APIKeyEnv = "WEATHER_API_KEY"

// maxBodySize bounds how much of an upstream response is read.
const maxBodySize = 1 << 20

// WeatherRequest names a place to look up.
type WeatherRequest struct {
	Location string `json:"location" jsonschema:"minLength=2,maxLength=100" jsonschema_description:"City name, postcode or lat,lon to look up"`
}

func (r *WeatherRequest) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location cannot be blank")
	}
	return nil
}

// WeatherResponse holds current conditions at a location.
type WeatherResponse struct {
	Location     string  `json:"location"`
	Region       string  `json:"region"`
	Country      string  `json:"country"`
	TemperatureC float64 `json:"temperature_c"`
	TemperatureF float64 `json:"temperature_f"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
	Humidity     int     `json:"humidity"`
	WindKph      float64 `json:"wind_kph"`
	WindDir      string  `json:"wind_dir"`
	LastUpdated  string  `json:"last_updated"`
}

// currentResponse mirrors the parts of /current.json we use.
type currentResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
		Humidity    int     `json:"humidity"`
		WindKph     float64 `json:"wind_kph"`
		WindDir     string  `json:"wind_dir"`
		LastUpdated string  `json:"last_updated"`
	} `json:"current"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// httpDoer is the part of *http.Client the tool needs.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherTool queries the current-conditions endpoint.
type WeatherTool struct {
	client  httpDoer
	baseURL string
	apiKey  string
}

// NewWeatherTool creates a WeatherTool. An empty apiKey is allowed: every
// call then fails with a ConfigurationError instead of reaching the network.
func NewWeatherTool(client httpDoer, cfg *config.Config, apiKey string) *WeatherTool {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.Tools.WeatherTimeoutMs) * time.Millisecond}
	}
	return &WeatherTool{
		client:  client,
		baseURL: strings.TrimRight(cfg.Tools.WeatherBaseURL, "/"),
		apiKey:  apiKey,
	}
}

// Run fetches current conditions for req.Location.
func (t *WeatherTool) Run(ctx context.Context, req *WeatherRequest) (*WeatherResponse, error) {
	if t.apiKey == "" {
		return nil, &ConfigurationError{Variable: APIKeyEnv}
	}

	query := url.Values{}
	query.Set("key", t.apiKey)
	query.Set("q", req.Location)
	endpoint := t.baseURL + "/current.json?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Location: req.Location, Cause: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &UpstreamError{Location: req.Location, Cause: redact(err, t.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &UpstreamError{Location: req.Location, Status: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{Location: req.Location, Status: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			upstream.Message = apiErr.Error.Message
		}
		return nil, upstream
	}

	var current currentResponse
	if err := json.Unmarshal(body, &current); err != nil {
		return nil, &UpstreamError{Location: req.Location, Status: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}

	return &WeatherResponse{
		Location:     current.Location.Name,
		Region:       current.Location.Region,
		Country:      current.Location.Country,
		TemperatureC: current.Current.TempC,
		TemperatureF: current.Current.TempF,
		Condition:    current.Current.Condition.Text,
		Icon:         current.Current.Condition.Icon,
		Humidity:     current.Current.Humidity,
		WindKph:      current.Current.WindKph,
		WindDir:      current.Current.WindDir,
		LastUpdated:  current.Current.LastUpdated,
	}, nil
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) error {
	msg := err.Error()
	if key == "" || !strings.Contains(msg, key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(msg, key, "REDACTED"))
}
