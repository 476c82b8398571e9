package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const londonJSON = `{
  "location": {"name": "London", "region": "City of London, Greater London", "country": "United Kingdom"},
  "current": {
    "last_updated": "2024-03-07 14:00",
    "temp_c": 11.0, "temp_f": 51.8,
    "condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png"},
    "wind_kph": 15.1, "wind_dir": "WSW", "humidity": 71
  }
}`

func newServerTool(t *testing.T, handler http.HandlerFunc, apiKey string) *WeatherTool {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.DefaultConfig()
	cfg.Tools.WeatherBaseURL = srv.URL + "/v1/"
	return NewWeatherTool(srv.Client(), cfg, apiKey)
}

func TestWeatherTool_Run_Success(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonJSON))
	}, "secret")

	resp, err := tool.Run(context.Background(), &WeatherRequest{Location: "London"})

	require.NoError(t, err)
	assert.Equal(t, &WeatherResponse{
		Location:     "London",
		Region:       "City of London, Greater London",
		Country:      "United Kingdom",
		TemperatureC: 11.0,
		TemperatureF: 51.8,
		Condition:    "Partly cloudy",
		Icon:         "//cdn.weatherapi.com/weather/64x64/day/116.png",
		Humidity:     71,
		WindKph:      15.1,
		WindDir:      "WSW",
		LastUpdated:  "2024-03-07 14:00",
	}, resp)
}

func TestWeatherTool_Run_MissingKey(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without an API key")
	}, "")

	_, err := tool.Run(context.Background(), &WeatherRequest{Location: "Paris"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errutil.ErrConfiguration)
	assert.Contains(t, err.Error(), APIKeyEnv)
}

func TestWeatherTool_Run_UpstreamErrorMessage(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}, "secret")

	_, err := tool.Run(context.Background(), &WeatherRequest{Location: "Atlantis"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errutil.ErrUpstream)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.Status)
	assert.Contains(t, err.Error(), "No matching location found.")
}

func TestWeatherTool_Run_UpstreamNonJSON(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}, "secret")

	_, err := tool.Run(context.Background(), &WeatherRequest{Location: "Paris"})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}

func TestWeatherTool_Run_UndecodableBody(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}, "secret")

	_, err := tool.Run(context.Background(), &WeatherRequest{Location: "Paris"})

	assert.ErrorIs(t, err, errutil.ErrUpstream)
}

type failingDoer struct{ err error }

func (f failingDoer) Do(req *http.Request) (*http.Response, error) { return nil, f.err }

func TestWeatherTool_Run_TransportErrorRedactsKey(t *testing.T) {
	cfg := config.DefaultConfig()
	tool := NewWeatherTool(failingDoer{err: errors.New(`Get "http://api.weatherapi.com/v1/current.json?key=topsecret&q=x": dial tcp: refused`)}, cfg, "topsecret")

	_, err := tool.Run(context.Background(), &WeatherRequest{Location: "x1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, errutil.ErrUpstream)
	assert.NotContains(t, err.Error(), "topsecret")
}

func TestWeatherTool_Run_ContextCancelled(t *testing.T) {
	tool := newServerTool(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(londonJSON))
	}, "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tool.Run(ctx, &WeatherRequest{Location: "London"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWeatherRequest_Validate(t *testing.T) {
	assert.Error(t, (&WeatherRequest{Location: "   "}).Validate())
	assert.NoError(t, (&WeatherRequest{Location: "NY"}).Validate())
}
