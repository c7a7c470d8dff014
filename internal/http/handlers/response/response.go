package response

import (
	"encoding/json"
	"net/http"
)

const (
	MSG_INVALID_REQUEST     = "Invalid request."
	MSG_INTERNAL_ERROR      = "Internal error."
	MSG_UNAUTHORIZED        = "Unauthorized."
	MSG_RATE_LIMIT_EXCEEDED = "Too many requests."
)

type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func OK() Response {
	return Response{OK: true}
}

func RenderOK(rw http.ResponseWriter) {
	Render(rw, OK(), http.StatusOK)
}

func RenderInvalidRequest(rw http.ResponseWriter) {
	RenderError(rw, MSG_INVALID_REQUEST, http.StatusBadRequest)
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, MSG_UNAUTHORIZED, http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, MSG_INTERNAL_ERROR, http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, MSG_RATE_LIMIT_EXCEEDED, http.StatusTooManyRequests)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, Response{OK: false, Message: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
