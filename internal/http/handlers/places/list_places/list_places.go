package listplaces

import (
	"net/http"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/services"
	service "wonderchain/internal/core/services/list_places"
	"wonderchain/internal/http/handlers/response"
)

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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rw.Header().Set("Cache-Control", "no-store")

	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, response.NewFeatureCollection(result.Places), http.StatusOK)
}
