package createplace

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/place"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
	service "wonderchain/internal/core/services/create_place"
	"wonderchain/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

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
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Summary     *string  `json:"summary"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Slug, validation.Required, validation.Length(1, 128), validation.Match(slugRegexp)),
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Summary, validation.Length(0, 1024)),
		validation.Field(&i.Description, validation.Length(0, 16384)),
		validation.Field(&i.ImageURL, is.URL, validation.Length(0, 2048)),
		validation.Field(&i.Latitude, validation.NotNil, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&i.Longitude, validation.NotNil, validation.Min(-180.0), validation.Max(180.0)),
	)
}

func (i Input) toServiceInput() service.Input {
	input := service.Input{
		Slug: place.Slug(i.Slug),
		Name: i.Name,
		Coordinates: place.Coordinates{
			Latitude:  *i.Latitude,
			Longitude: *i.Longitude,
		},
	}
	if i.Summary != nil {
		input.Summary = c.NewOptional(*i.Summary, true)
	}
	if i.Description != nil {
		input.Description = c.NewOptional(*i.Description, true)
	}
	if i.ImageURL != nil {
		input.ImageURL = c.NewOptional(*i.ImageURL, true)
	}
	return input
}

type Result struct {
	response.Response
	Place response.Place `json:"place"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), input.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, place.ErrSlugAlreadyExists):
			response.RenderError(rw, "Slug is already taken.", http.StatusConflict)
		case errors.Is(err, place.ErrInvalidCoordinates):
			response.RenderError(rw, "Invalid coordinates.", http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	p := response.Place{}
	p.FromDomainPlace(result.Place)
	response.Render(rw, Result{Response: response.OK(), Place: p}, http.StatusCreated)
}
