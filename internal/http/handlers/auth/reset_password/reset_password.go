package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "wonderchain/internal/core/domain/common"
	e "wonderchain/internal/core/domain/errors"
	"wonderchain/internal/core/domain/user"
	"wonderchain/internal/core/services"
	resetpassword "wonderchain/internal/core/services/reset_password"
	"wonderchain/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MSG_PASSWORD_TOO_SHORT = "Password must be at least 8 characters."
	MSG_PASSWORD_TOO_LONG  = "Password must be at most 256 characters."
	MSG_PASSWORD_MISMATCH  = "Passwords do not match."
	MSG_INVALID_TOKEN      = "Invalid or expired token."
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token                *string `json:"token"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"passwordConfirmation"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

// Validate checks the shape only, the password policy is applied by the service.
func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.NotNil),
		validation.Field(&i.Password, validation.NotNil),
	)
}

func (i Input) toServiceInput() resetpassword.Input {
	input := resetpassword.Input{
		Token:       user.PasswordResetSecret(*i.Token),
		NewPassword: user.RawPassword(*i.Password),
	}
	if i.PasswordConfirmation != nil {
		input.Confirmation = c.NewOptional(user.RawPassword(*i.PasswordConfirmation), true)
	}
	return input
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}

	_, err := h.service.Run(r.Context(), input.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordTooShort):
			response.RenderError(rw, MSG_PASSWORD_TOO_SHORT, http.StatusBadRequest)
		case errors.Is(err, user.ErrPasswordTooLong):
			response.RenderError(rw, MSG_PASSWORD_TOO_LONG, http.StatusBadRequest)
		case errors.Is(err, user.ErrPasswordConfirmationMismatch):
			response.RenderError(rw, MSG_PASSWORD_MISMATCH, http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidPasswordResetToken):
			response.RenderError(rw, MSG_INVALID_TOKEN, http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderOK(rw)
}
