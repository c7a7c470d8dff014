package updateplacestatus

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
	service "wonderchain/internal/core/services/update_place_status"
	"wonderchain/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Status string `json:"status"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.Status,
			validation.Required,
			validation.In(place.StatusDraft.String(), place.StatusPublished.String()),
		),
	)
}

type Result struct {
	response.Response
	Place response.Place `json:"place"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawPlaceID := chi.URLParam(r, "placeID")
	placeID, err := strconv.ParseInt(rawPlaceID, 10, 64)
	if err != nil {
		response.RenderError(rw, "Invalid place ID.", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := place.ParseStatus(input.Status)
	if err != nil {
		response.RenderInvalidRequest(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{PlaceID: place.ID(placeID), Status: status})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, place.ErrPlaceDoesNotExist):
			response.RenderError(rw, "Place not found.", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	p := response.Place{}
	p.FromDomainPlace(result.Place)
	response.Render(rw, Result{Response: response.OK(), Place: p}, http.StatusOK)
}
