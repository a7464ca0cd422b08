package generators

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/nets"
	"google.golang.org/api/option"
)

// Gemini sends the flattened conversation as a single text prompt.
type Gemini struct {
	args    GeneratorArgs
	clients *GeminiClients

	Logger dscope.Inject[logs.Logger]
}

var _ Generator = new(Gemini)

type NewGemini func(args GeneratorArgs) *Gemini

func (Module) NewGemini(
	inject dscope.InjectStruct,
	clients *GeminiClients,
) NewGemini {
	return func(args GeneratorArgs) *Gemini {
		ret := &Gemini{
			args:    args,
			clients: clients,
		}
		inject(&ret)
		return ret
	}
}

// GeminiClients shares one client per api key and endpoint across generators.
type GeminiClients struct {
	httpClient nets.HTTPClient
	mu         sync.Mutex
	clients    map[geminiClientKey]*genai.Client
}

type geminiClientKey struct {
	apiKey  string
	baseURL string
}

func (Module) GeminiClients(
	httpClient nets.HTTPClient,
) *GeminiClients {
	return &GeminiClients{
		httpClient: httpClient,
		clients:    make(map[geminiClientKey]*genai.Client),
	}
}

func (c *GeminiClients) Get(ctx context.Context, args GeneratorArgs) (*genai.Client, error) {
	key := geminiClientKey{
		apiKey:  args.APIKey,
		baseURL: args.BaseURL,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[key]; ok {
		return client, nil
	}
	opts := []option.ClientOption{
		option.WithAPIKey(args.APIKey),
		option.WithHTTPClient(&http.Client{
			Transport: &apiKeyTransport{
				base:   c.httpClient.Transport,
				apiKey: args.APIKey,
			},
		}),
	}
	if args.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(args.BaseURL))
	}
	// the client outlives ctx
	client, err := genai.NewClient(context.WithoutCancel(ctx), opts...)
	if err != nil {
		return nil, err
	}
	c.clients[key] = client
	return client, nil
}

// Close closes every client. Later Get calls create new ones.
func (c *GeminiClients) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for key, client := range c.clients {
		errs = append(errs, client.Close())
		delete(c.clients, key)
	}
	return errors.Join(errs...)
}

func (g *Gemini) Args() GeneratorArgs {
	return g.args
}

func (g *Gemini) Generate(ctx context.Context, turns []Turn, temperature float32) (string, error) {
	if g.args.APIKey == "" {
		return "", fmt.Errorf("%s: %w", g.args.Provider, ErrMissingAPIKey)
	}
	client, err := g.clients.Get(ctx, g.args)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(g.args.Model)
	model.SetTemperature(temperature)

	g.Logger().InfoContext(ctx, "generating",
		"provider", g.args.Provider,
		"model", g.args.Model,
		"turns", len(turns),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(FormatPrompt(turns)))
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.args.Model, err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// first candidate only
		break
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini %s: %w", g.args.Model, ErrEmptyResponse)
	}
	return b.String(), nil
}

// apiKeyTransport sets the key header; a custom http client bypasses the
// key injection of the client library.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.apiKey != "" && req.Header.Get("x-goog-api-key") == "" && req.URL.Query().Get("key") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("x-goog-api-key", t.apiKey)
	}
	return base.RoundTrip(req)
}
