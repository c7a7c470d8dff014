package locatebyip

import (
	"errors"
	"net"
	"net/http"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/geo"
	"wonderchain/internal/core/services"
	service "wonderchain/internal/core/services/locate_by_ip"
	"wonderchain/internal/http/handlers/response"
)

const MSG_LOCATION_UNAVAILABLE = "Location unavailable."

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	response.Response
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Cache-Control", "no-store")

	result, err := h.service.Run(r.Context(), service.Input{IP: remoteIP(r)})
	if errors.Is(err, geo.ErrLocationUnavailable) {
		response.RenderError(rw, MSG_LOCATION_UNAVAILABLE, http.StatusNotFound)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{
		Response:  response.OK(),
		Latitude:  result.Location.Latitude,
		Longitude: result.Location.Longitude,
		City:      result.Location.City,
		Country:   result.Location.Country,
	}, http.StatusOK)
}

// remoteIP reads the address left by the RealIP middleware, which drops
// the port, and falls back to host:port form otherwise.
func remoteIP(r *http.Request) net.IP {
	if ip := net.ParseIP(r.RemoteAddr); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return nil
	}
	return net.ParseIP(host)
}
