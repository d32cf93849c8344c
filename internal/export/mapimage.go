package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pkordes/travelbook/internal/domain"
)

// ErrNoCoordinates is returned when no day of the trip has been located.
var ErrNoCoordinates = errors.New("export: no located day to centre the map on")

// MapCapturer produces a PNG (or other image) of the trip's map.
type MapCapturer interface {
	Capture(ctx context.Context, trip domain.Trip) ([]byte, error)
}

// maxMapBytes bounds the image read from the static map service.
const maxMapBytes = 8 << 20

// StaticMapCapturer fetches an image from a static-map service. The URL
// template may contain {lat}, {lon} (the centre of all located days) and
// {markers} ("lat,lon|lat,lon|..."), e.g.
//
//	https://staticmap.example.org/map?center={lat},{lon}&zoom=6&size=800x600&markers={markers}
type StaticMapCapturer struct {
	urlTemplate string
	http        *http.Client
}

// NewStaticMapCapturer constructs a StaticMapCapturer.
func NewStaticMapCapturer(urlTemplate string, timeout time.Duration) *StaticMapCapturer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StaticMapCapturer{urlTemplate: urlTemplate, http: &http.Client{Timeout: timeout}}
}

// Capture downloads the map and checks that the payload is an image.
func (c *StaticMapCapturer) Capture(ctx context.Context, trip domain.Trip) ([]byte, error) {
	url, err := c.mapURL(trip)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("export.StaticMapCapturer.Capture: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export.StaticMapCapturer.Capture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export.StaticMapCapturer.Capture: unexpected status %d", resp.StatusCode)
	}
	img, err := io.ReadAll(io.LimitReader(resp.Body, maxMapBytes))
	if err != nil {
		return nil, fmt.Errorf("export.StaticMapCapturer.Capture: read: %w", err)
	}
	if mt := mimetype.Detect(img); !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("export.StaticMapCapturer.Capture: payload is %s, not an image", mt.String())
	}
	return img, nil
}

func (c *StaticMapCapturer) mapURL(trip domain.Trip) (string, error) {
	var (
		markers        []string
		sumLat, sumLon float64
	)
	for _, d := range trip.Days {
		if !d.Location.HasCoordinates() {
			continue
		}
		lat, lon := *d.Location.Lat, *d.Location.Lon
		sumLat += lat
		sumLon += lon
		markers = append(markers, coord(lat)+","+coord(lon))
	}
	if len(markers) == 0 {
		return "", ErrNoCoordinates
	}
	n := float64(len(markers))
	return strings.NewReplacer(
		"{lat}", coord(sumLat/n),
		"{lon}", coord(sumLon/n),
		"{markers}", strings.Join(markers, "|"),
	).Replace(c.urlTemplate), nil
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
