package generators

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/nets"
)

// OpenAI talks to any OpenAI compatible chat completions endpoint.
type OpenAI struct {
	args   GeneratorArgs
	client nets.HTTPClient

	Logger dscope.Inject[logs.Logger]
}

var _ Generator = new(OpenAI)

type NewOpenAI func(args GeneratorArgs) *OpenAI

func (Module) NewOpenAI(
	inject dscope.InjectStruct,
	client nets.HTTPClient,
) NewOpenAI {
	return func(args GeneratorArgs) *OpenAI {
		ret := &OpenAI{
			args:   args,
			client: client,
		}
		inject(&ret)
		return ret
	}
}

func (o *OpenAI) Args() GeneratorArgs {
	return o.args
}

func (o *OpenAI) Generate(ctx context.Context, turns []Turn, temperature float32) (string, error) {
	if o.args.APIKey == "" && o.args.Provider != ProviderOllama {
		return "", fmt.Errorf("%s: %w", o.args.Provider, ErrMissingAPIKey)
	}

	req := ChatCompletionRequest{
		Model:       o.args.Model,
		Stream:      true,
		Temperature: temperature,
	}
	for _, turn := range turns {
		req.Messages = append(req.Messages, ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	o.Logger().InfoContext(ctx, "generating",
		"provider", o.args.Provider,
		"model", o.args.Model,
		"turns", len(turns),
	)

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(o.args.BaseURL, "/")+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	if o.args.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.args.APIKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", OpenAIError{
			Err:     err,
			Request: req,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == nil {
			return "", OpenAIError{
				Err:     fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body)),
				Request: req,
			}
		}
		errResp.Error.HTTPStatusCode = resp.StatusCode
		return "", OpenAIError{
			Err:     errResp.Error,
			Request: req,
		}
	}

	var text strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "data: [DONE]") {
			break
		}
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}

		var streamResp ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
			return "", fmt.Errorf("error unmarshalling stream response: %w", err)
		}
		if streamResp.Error != nil {
			return "", OpenAIError{
				Err:     streamResp.Error,
				Request: req,
			}
		}
		if len(streamResp.Choices) == 0 {
			continue
		}

		choice := streamResp.Choices[0]
		text.WriteString(choice.Delta.Content)
		if choice.FinishReason == "error" {
			return "", OpenAIError{
				Err:     errors.New("finish reason: error"),
				Request: req,
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading stream: %w", err)
	}

	if text.Len() == 0 {
		return "", OpenAIError{
			Err:     ErrEmptyResponse,
			Request: req,
		}
	}
	return text.String(), nil
}

type ChatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []ChatCompletionMessage `json:"messages"`
	Stream      bool                    `json:"stream"`
	Temperature float32                 `json:"temperature"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionStreamResponse struct {
	Choices []ChatCompletionStreamChoice `json:"choices"`
	Error   *APIError                    `json:"error,omitempty"`
}

type ChatCompletionStreamChoice struct {
	Delta        ChatCompletionStreamChoiceDelta `json:"delta"`
	FinishReason string                          `json:"finish_reason"`
}

type ChatCompletionStreamChoiceDelta struct {
	Content string `json:"content,omitempty"`
	Role    string `json:"role,omitempty"`
}
