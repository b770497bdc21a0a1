package estateapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrMalformedResponse = errors.New("malformed response from estate api")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
)

// APIError is a non-2xx answer of the estate API.
type APIError struct {
	Status  int
	Message string
	// fallback текст, когда сервер не прислал причину
	fallback string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("estate api: status %d: %s", e.Status, e.UserMessage())
}

// UserMessage is the text shown to the agent.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.fallback
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == 404
	case ErrUnauthorized:
		return e.Status == 401 || e.Status == 403
	}
	return false
}

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Title   string `json:"title"`
}

func newAPIError(status int, body []byte, fallback string) *APIError {
	apiErr := &APIError{Status: status, fallback: fallback}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		for _, msg := range []string{eb.Message, eb.Detail, eb.Title} {
			if msg = strings.TrimSpace(msg); msg != "" {
				apiErr.Message = msg
				break
			}
		}
	}

	return apiErr
}
