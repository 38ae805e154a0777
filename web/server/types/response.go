package types

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response holds the status fields included in every shard response.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// OK returns the status fields of a successful response.
func OK() *Response {
	return &Response{StatusCode: http.StatusOK}
}

func (resp *Response) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, resp.StatusCode)
	if resp.Status == "" {
		resp.Status = http.StatusText(resp.StatusCode)
	}
	return nil
}

// Failure renders err with the given status code.
func Failure(code int, err error) render.Renderer {
	return &Response{StatusCode: code, Error: err.Error()}
}

func ErrBadRequest(err error) render.Renderer {
	return Failure(http.StatusBadRequest, err)
}

func ErrInternal(err error) render.Renderer {
	return Failure(http.StatusInternalServerError, err)
}
