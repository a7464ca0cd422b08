package generators

import "fmt"

type OpenAIError struct {
	Err     error
	Request ChatCompletionRequest
}

var _ error = OpenAIError{}

func (o OpenAIError) Error() string {
	return fmt.Sprintf("openai %s: %v", o.Request.Model, o.Err)
}

func (o OpenAIError) Unwrap() error {
	return o.Err
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code           any     `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
	Param          *string `json:"param,omitempty"`
	Type           string  `json:"type,omitempty"`
	HTTPStatusCode int     `json:"-"`
}

func (e *APIError) Error() string {
	if e.HTTPStatusCode != 0 {
		return fmt.Sprintf("status %d: %s", e.HTTPStatusCode, e.Message)
	}
	return e.Message
}
