package generators

import (
	"context"
	"errors"
)

type Generator interface {
	Args() GeneratorArgs
	Generate(ctx context.Context, turns []Turn, temperature float32) (string, error)
}

type GeneratorArgs struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url"`
	APIKey   string `json:"-"`
	Model    string `json:"model"`
}

var (
	ErrMissingAPIKey = errors.New("missing api key")
	ErrEmptyResponse = errors.New("empty response")
)
