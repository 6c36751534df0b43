// Package sensor abstracts the device location source. The raw GPS driver
// lives outside this service; positions arrive either from a local
// positioning bridge over HTTP or from fixed configuration.
package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/t-cool/naturalist/internal/model"
)

// Position is a single sensor reading.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lon"`
}

// Sensor produces the current position. Failures wrap
// model.ErrSensorUnavailable; callers degrade to sentinel coordinates.
type Sensor interface {
	Current(ctx context.Context) (Position, error)
}

// HTTPSensor reads the current high-accuracy position from a local
// positioning bridge serving {"lat": ..., "lon": ...} JSON.
type HTTPSensor struct {
	client *resty.Client
	url    string
}

func NewHTTPSensor(url string, timeout time.Duration) *HTTPSensor {
	return &HTTPSensor{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (s *HTTPSensor) Current(ctx context.Context) (Position, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", model.ErrSensorUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Position{}, fmt.Errorf("%w: bridge status %d", model.ErrSensorUnavailable, resp.StatusCode())
	}
	var pos Position
	if err := json.Unmarshal(resp.Body(), &pos); err != nil {
		return Position{}, fmt.Errorf("%w: %v", model.ErrSensorUnavailable, err)
	}
	return pos, nil
}

// Fixed returns a configured position, for environments with no bridge.
type Fixed Position

func (f Fixed) Current(context.Context) (Position, error) {
	return Position(f), nil
}
