package iplocator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/geo"
	"wonderchain/internal/core/domain/logging"
)

type lookupResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	CountryName string  `json:"country_name"`
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
}

func (r *lookupResult) FromJSON(reader io.Reader) error {
	decoder := json.NewDecoder(reader)
	return decoder.Decode(r)
}

// HTTPLocator queries an ipapi.co compatible JSON API.
type HTTPLocator struct {
	log        logging.Logger
	httpClient http.Client
	baseURL    url.URL
}

func New(
	log logging.Logger,
	baseURL url.URL,
	timeout time.Duration,
) *HTTPLocator {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &HTTPLocator{
		log:        log,
		baseURL:    baseURL,
		httpClient: http.Client{Timeout: timeout},
	}
}

func (l *HTTPLocator) Locate(ctx context.Context, ip net.IP) (location geo.Location, err error) {
	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		l.baseURL.JoinPath(ip.String(), "json").String(),
		nil,
	)
	if err != nil {
		return location, err
	}
	request.Header.Set("Accept", "application/json")

	response, err := l.httpClient.Do(request)
	if err != nil {
		return location, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return location, fmt.Errorf("IP locator responded with status %d", response.StatusCode)
	}

	result := lookupResult{}
	if err := result.FromJSON(response.Body); err != nil {
		return location, err
	}
	if result.Error {
		l.log.Info(ctx, "IP locator could not resolve address.", logging.Entry("reason", result.Reason))
		return location, geo.ErrLocationUnavailable
	}
	if result.Latitude == 0 && result.Longitude == 0 {
		return location, geo.ErrLocationUnavailable
	}

	return geo.Location{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		City:      result.City,
		Country:   result.CountryName,
	}, nil
}
