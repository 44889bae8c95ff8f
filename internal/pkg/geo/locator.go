package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
)

// HTTPLocator resolves the device position through a location bridge
// endpoint. Any failure (denied, timeout, unsupported, bad payload) maps to
// attendance.ErrLocationUnavailable so flows can degrade uniformly.
type HTTPLocator struct {
	endpoint string
	client   *http.Client
}

func NewHTTPLocator(endpoint string, timeout time.Duration) *HTTPLocator {
	return &HTTPLocator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Acquire implements attendance.Locator.
func (l *HTTPLocator) Acquire(ctx context.Context) (attendance.Coordinates, error) {
	if l.endpoint == "" {
		return attendance.Coordinates{}, fmt.Errorf("no location endpoint configured: %w", attendance.ErrLocationUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return attendance.Coordinates{}, fmt.Errorf("failed to build location request: %w", attendance.ErrLocationUnavailable)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return attendance.Coordinates{}, fmt.Errorf("location request failed: %w", attendance.ErrLocationUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return attendance.Coordinates{}, fmt.Errorf("location endpoint returned status %d: %w", resp.StatusCode, attendance.ErrLocationUnavailable)
	}

	var coords attendance.Coordinates
	if err := json.NewDecoder(resp.Body).Decode(&coords); err != nil {
		return attendance.Coordinates{}, fmt.Errorf("failed to decode location payload: %w", attendance.ErrLocationUnavailable)
	}

	if coords.Latitude < -90 || coords.Latitude > 90 || coords.Longitude < -180 || coords.Longitude > 180 {
		return attendance.Coordinates{}, fmt.Errorf("location endpoint returned out-of-range coordinates: %w", attendance.ErrLocationUnavailable)
	}

	return coords, nil
}
