package requestpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/services"
	service "wonderchain/internal/core/services/request_password_reset"
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

// Input keeps the email untyped so that a non-string value is answered
// the same way as an unknown address.
type Input struct {
	Email interface{} `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		// Valid JSON that is not an object carries no email.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			response.RenderOK(rw)
			return
		}
		response.RenderInvalidRequest(rw)
		return
	}

	email, ok := input.Email.(string)
	if !ok {
		response.RenderOK(rw)
		return
	}

	// The outcome is never disclosed, the service logs its own failures.
	_, _ = h.service.Run(r.Context(), service.Input{Email: c.NewEmail(email)})
	response.RenderOK(rw)
}
